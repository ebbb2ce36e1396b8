// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package locale

// itMessages is the Italian catalog and the fallback for every other language.
var itMessages = map[string]string{
	// Header
	"app.title":    "Trova la tua auto ideale con l'AI",
	"app.subtitle": "Descrivi quello che cerchi in linguaggio naturale",
	"app.footer":   "Powered by AI • Built with ❤️",

	// Chat
	"chat.greeting":      "👋 Ciao! Come posso aiutarti a trovare la tua auto ideale?",
	"chat.start_hint":    "Inizia descrivendo quello che cerchi...",
	"chat.placeholder":   "Descrivi la tua auto ideale... (es: \"Cerco una macchina ibrida familiare sotto i 25000 euro\")",
	"chat.searching":     "Sto cercando...",
	"chat.details_intro": "Ecco i dettagli del veicolo richiesto:",
	"chat.found_default": "Ho trovato alcuni veicoli per te.",
	"chat.error":         "Mi dispiace, si è verificato un errore. Riprova più tardi.",
	"chat.details_error": "Impossibile caricare i dettagli del veicolo.",
	"chat.you":           "Tu",
	"chat.assistant":     "Assistente",

	// Search results
	"results.found":        "Trovati %d veicoli:",
	"results.view_details": "Vedi dettagli",
	"results.score":        "Score: %s",
	"results.doors":        "%d porte",

	// Vehicle details
	"details.title":        "Dettagli Veicolo",
	"details.general":      "Informazioni Generali",
	"details.technical":    "Specifiche Tecniche",
	"details.consumption":  "Consumi ed Emissioni",
	"details.equipment":    "Equipaggiamenti",
	"details.price":        "Prezzo",
	"details.location":     "Ubicazione",
	"details.year":         "Anno",
	"details.mileage":      "Chilometraggio",
	"details.fuel":         "Alimentazione",
	"details.body":         "Carrozzeria",
	"details.transmission": "Cambio",
	"details.power":        "Potenza",
	"details.engine":       "Motore",
	"details.doors":        "Porte",
	"details.seats":        "Posti",
	"details.urban":        "Urbano",
	"details.extra_urban":  "Extraurbano",
	"details.combined":     "Combinato",
	"details.emissions":    "Emissioni CO2",
	"details.weight":       "Peso",
	"details.notes":        "Note",

	"common.na": "N/A",

	// Language selector
	"language.title": "Lingua",

	// Key hints
	"keys.send":     "invio cerca",
	"keys.results":  "tab risultati",
	"keys.open":     "invio dettagli",
	"keys.language": "ctrl+l lingua",
	"keys.save":     "ctrl+s salva",
	"keys.new":      "ctrl+n nuova",
	"keys.quit":     "ctrl+c esci",
	"keys.close":    "esc chiudi",

	// Session status
	"session.saved":       "Conversazione salvata: %s",
	"session.save_failed": "Salvataggio non riuscito: %s",
	"session.cleared":     "Nuova conversazione",
	"session.language":    "Lingua: %s",
	"session.busy":        "Attendi la risposta in corso...",
}
