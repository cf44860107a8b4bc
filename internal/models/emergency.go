package models

// EmergencyContact is a phone number shown on the emergency page.
type EmergencyContact struct {
	Name   string `json:"name" yaml:"name"`
	Number string `json:"number" yaml:"number"`
}

// EmergencyCategory groups related emergency contacts.
type EmergencyCategory struct {
	Category string             `json:"category" yaml:"category"`
	Contacts []EmergencyContact `json:"contacts" yaml:"contacts"`
}

// SafetyTip is a titled list of safety advice.
type SafetyTip struct {
	Title string   `json:"title" yaml:"title"`
	Tips  []string `json:"tips" yaml:"tips"`
}

// EmergencyDirectory is the response of GET /api/emergency.
type EmergencyDirectory struct {
	Contacts   []EmergencyCategory `json:"contacts"`
	SafetyTips []SafetyTip         `json:"safetyTips"`
}
