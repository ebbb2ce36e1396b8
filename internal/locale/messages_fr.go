// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package locale

var frMessages = map[string]string{
	"app.title":    "Trouvez votre voiture parfaite avec l'IA",
	"app.subtitle": "Décrivez ce que vous cherchez en langage naturel",
	"app.footer":   "Powered by AI • Built with ❤️",

	"chat.greeting":      "👋 Salut! Comment puis-je vous aider à trouver votre voiture parfaite?",
	"chat.start_hint":    "Commencez par décrire ce que vous cherchez...",
	"chat.placeholder":   "Décrivez votre voiture idéale... (ex: \"Je cherche une hybride familiale fiable sous 25k\")",
	"chat.searching":     "Recherche...",
	"chat.details_intro": "Voici les détails du véhicule demandé :",
	"chat.found_default": "J'ai trouvé quelques véhicules pour vous.",
	"chat.error":         "Désolé, une erreur s'est produite. Veuillez réessayer plus tard.",
	"chat.details_error": "Impossible de charger les détails du véhicule.",
	"chat.you":           "Vous",
	"chat.assistant":     "Assistant",

	"results.found":        "Trouvé %d véhicules:",
	"results.view_details": "Voir détails",
	"results.score":        "Score : %s",
	"results.doors":        "%d portes",

	"details.title":        "Détails du Véhicule",
	"details.general":      "Informations Générales",
	"details.technical":    "Spécifications Techniques",
	"details.consumption":  "Consommation et Émissions",
	"details.equipment":    "Équipements",
	"details.price":        "Prix",
	"details.location":     "Localisation",
	"details.year":         "Année",
	"details.mileage":      "Kilométrage",
	"details.fuel":         "Carburant",
	"details.body":         "Carrosserie",
	"details.transmission": "Transmission",
	"details.power":        "Puissance",
	"details.engine":       "Moteur",
	"details.doors":        "Portes",
	"details.seats":        "Places",
	"details.urban":        "Urbain",
	"details.extra_urban":  "Extra-urbain",
	"details.combined":     "Combiné",
	"details.emissions":    "Émissions CO2",
	"details.weight":       "Poids",
	"details.notes":        "Remarques",

	"common.na": "N/A",

	"language.title": "Langue",

	"keys.send":     "entrée rechercher",
	"keys.results":  "tab résultats",
	"keys.open":     "entrée détails",
	"keys.language": "ctrl+l langue",
	"keys.save":     "ctrl+s enregistrer",
	"keys.new":      "ctrl+n nouvelle",
	"keys.quit":     "ctrl+c quitter",
	"keys.close":    "esc fermer",

	"session.saved":       "Conversation enregistrée : %s",
	"session.save_failed": "Échec de l'enregistrement : %s",
	"session.cleared":     "Nouvelle conversation",
	"session.language":    "Langue : %s",
	"session.busy":        "Veuillez patienter pendant la réponse en cours...",
}
