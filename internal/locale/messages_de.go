// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package locale

var deMessages = map[string]string{
	"app.title":    "Finden Sie Ihr perfektes Auto mit KI",
	"app.subtitle": "Beschreiben Sie in natürlicher Sprache, was Sie suchen",
	"app.footer":   "Powered by AI • Built with ❤️",

	"chat.greeting":      "👋 Hallo! Wie kann ich Ihnen helfen, Ihr perfektes Auto zu finden?",
	"chat.start_hint":    "Beginnen Sie mit der Beschreibung dessen, was Sie suchen...",
	"chat.placeholder":   "Beschreiben Sie Ihr ideales Auto... (z.B.: \"Ich suche einen zuverlässigen Familienhybrid unter 25k\")",
	"chat.searching":     "Suche...",
	"chat.details_intro": "Hier sind die Details des angefragten Fahrzeugs:",
	"chat.found_default": "Ich habe einige Fahrzeuge für Sie gefunden.",
	"chat.error":         "Entschuldigung, ein Fehler ist aufgetreten. Bitte versuchen Sie es später erneut.",
	"chat.details_error": "Die Fahrzeugdetails konnten nicht geladen werden.",
	"chat.you":           "Sie",
	"chat.assistant":     "Assistent",

	"results.found":        "%d Fahrzeuge gefunden:",
	"results.view_details": "Details ansehen",
	"results.score":        "Bewertung: %s",
	"results.doors":        "%d Türen",

	"details.title":        "Fahrzeugdetails",
	"details.general":      "Allgemeine Informationen",
	"details.technical":    "Technische Daten",
	"details.consumption":  "Verbrauch & Emissionen",
	"details.equipment":    "Ausstattung",
	"details.price":        "Preis",
	"details.location":     "Standort",
	"details.year":         "Jahr",
	"details.mileage":      "Laufleistung",
	"details.fuel":         "Kraftstoff",
	"details.body":         "Karosserie",
	"details.transmission": "Getriebe",
	"details.power":        "Leistung",
	"details.engine":       "Motor",
	"details.doors":        "Türen",
	"details.seats":        "Sitze",
	"details.urban":        "Stadt",
	"details.extra_urban":  "Außerorts",
	"details.combined":     "Kombiniert",
	"details.emissions":    "CO2-Emissionen",
	"details.weight":       "Gewicht",
	"details.notes":        "Anmerkungen",

	"common.na": "N/A",

	"language.title": "Sprache",

	"keys.send":     "enter suchen",
	"keys.results":  "tab Ergebnisse",
	"keys.open":     "enter Details",
	"keys.language": "ctrl+l Sprache",
	"keys.save":     "ctrl+s speichern",
	"keys.new":      "ctrl+n neu",
	"keys.quit":     "ctrl+c beenden",
	"keys.close":    "esc schließen",

	"session.saved":       "Unterhaltung gespeichert: %s",
	"session.save_failed": "Speichern fehlgeschlagen: %s",
	"session.cleared":     "Neue Unterhaltung",
	"session.language":    "Sprache: %s",
	"session.busy":        "Bitte warten Sie auf die laufende Antwort...",
}
