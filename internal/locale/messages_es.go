// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package locale

var esMessages = map[string]string{
	"app.title":    "Encuentra tu coche perfecto con IA",
	"app.subtitle": "Describe lo que buscas en lenguaje natural",
	"app.footer":   "Powered by AI • Built with ❤️",

	"chat.greeting":      "👋 ¡Hola! ¿Cómo puedo ayudarte a encontrar tu coche perfecto?",
	"chat.start_hint":    "Comienza describiendo lo que buscas...",
	"chat.placeholder":   "Describe tu coche ideal... (ej: \"Busco un híbrido familiar confiable por menos de 25k\")",
	"chat.searching":     "Buscando...",
	"chat.details_intro": "Aquí están los detalles del vehículo solicitado:",
	"chat.found_default": "He encontrado algunos vehículos para ti.",
	"chat.error":         "Lo siento, se produjo un error. Inténtalo de nuevo más tarde.",
	"chat.details_error": "No se pudieron cargar los detalles del vehículo.",
	"chat.you":           "Tú",
	"chat.assistant":     "Asistente",

	"results.found":        "Encontrados %d vehículos:",
	"results.view_details": "Ver detalles",
	"results.score":        "Puntuación: %s",
	"results.doors":        "%d puertas",

	"details.title":        "Detalles del Vehículo",
	"details.general":      "Información General",
	"details.technical":    "Especificaciones Técnicas",
	"details.consumption":  "Consumo y Emisiones",
	"details.equipment":    "Equipamiento",
	"details.price":        "Precio",
	"details.location":     "Ubicación",
	"details.year":         "Año",
	"details.mileage":      "Kilometraje",
	"details.fuel":         "Combustible",
	"details.body":         "Carrocería",
	"details.transmission": "Transmisión",
	"details.power":        "Potencia",
	"details.engine":       "Motor",
	"details.doors":        "Puertas",
	"details.seats":        "Asientos",
	"details.urban":        "Urbano",
	"details.extra_urban":  "Extraurbano",
	"details.combined":     "Combinado",
	"details.emissions":    "Emisiones CO2",
	"details.weight":       "Peso",
	"details.notes":        "Notas",

	"common.na": "N/A",

	"language.title": "Idioma",

	"keys.send":     "intro buscar",
	"keys.results":  "tab resultados",
	"keys.open":     "intro detalles",
	"keys.language": "ctrl+l idioma",
	"keys.save":     "ctrl+s guardar",
	"keys.new":      "ctrl+n nueva",
	"keys.quit":     "ctrl+c salir",
	"keys.close":    "esc cerrar",

	"session.saved":       "Conversación guardada: %s",
	"session.save_failed": "Error al guardar: %s",
	"session.cleared":     "Nueva conversación",
	"session.language":    "Idioma: %s",
	"session.busy":        "Espera la respuesta en curso...",
}
