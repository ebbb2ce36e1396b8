// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package locale

var enMessages = map[string]string{
	"app.title":    "Find your perfect car with AI",
	"app.subtitle": "Describe what you're looking for in natural language",
	"app.footer":   "Powered by AI • Built with ❤️",

	"chat.greeting":      "👋 Hello! How can I help you find your perfect car?",
	"chat.start_hint":    "Start by describing what you're looking for...",
	"chat.placeholder":   "Describe your ideal car... (e.g., \"I need a reliable family hybrid under 25k\")",
	"chat.searching":     "Searching...",
	"chat.details_intro": "Here are the details of the requested vehicle:",
	"chat.found_default": "I found some vehicles for you.",
	"chat.error":         "Sorry, an error occurred. Please try again later.",
	"chat.details_error": "Could not load the vehicle details.",
	"chat.you":           "You",
	"chat.assistant":     "Assistant",

	"results.found":        "Found %d vehicles:",
	"results.view_details": "View details",
	"results.score":        "Score: %s",
	"results.doors":        "%d doors",

	"details.title":        "Vehicle Details",
	"details.general":      "General Information",
	"details.technical":    "Technical Specifications",
	"details.consumption":  "Consumption & Emissions",
	"details.equipment":    "Equipment",
	"details.price":        "Price",
	"details.location":     "Location",
	"details.year":         "Year",
	"details.mileage":      "Mileage",
	"details.fuel":         "Fuel Type",
	"details.body":         "Body Type",
	"details.transmission": "Transmission",
	"details.power":        "Power",
	"details.engine":       "Engine",
	"details.doors":        "Doors",
	"details.seats":        "Seats",
	"details.urban":        "Urban",
	"details.extra_urban":  "Extra Urban",
	"details.combined":     "Combined",
	"details.emissions":    "CO2 Emissions",
	"details.weight":       "Weight",
	"details.notes":        "Notes",

	"common.na": "N/A",

	"language.title": "Language",

	"keys.send":     "enter search",
	"keys.results":  "tab results",
	"keys.open":     "enter details",
	"keys.language": "ctrl+l language",
	"keys.save":     "ctrl+s save",
	"keys.new":      "ctrl+n new",
	"keys.quit":     "ctrl+c quit",
	"keys.close":    "esc close",

	"session.saved":       "Conversation saved: %s",
	"session.save_failed": "Save failed: %s",
	"session.cleared":     "New conversation",
	"session.language":    "Language: %s",
	"session.busy":        "Please wait for the current reply...",
}
