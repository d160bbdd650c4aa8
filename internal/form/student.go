package form

import "github.com/smart-defence/academy-console/internal/models"

const defaultStudentCategory = "REGULAR"

// CollectStudent reads the profile tab form into a student draft.
func CollectStudent(v Values) models.Student {
	category := text(v, "category")
	if category == "" {
		category = defaultStudentCategory
	}
	return models.Student{
		ID: text(v, "id"),
		User: models.UserProfile{
			FirstName: text(v, "firstName"),
			LastName:  text(v, "lastName"),
			Email:     text(v, "email"),
			Phone:     text(v, "phone"),
			CPF:       text(v, "cpf"),
			WhatsApp:  text(v, "whatsapp"),
			BirthDate: text(v, "birthDate"),
		},
		Category:            category,
		IsActive:            boolFieldOr(v, "isActive", true),
		EmergencyContact:    text(v, "emergencyContact"),
		MedicalObservations: text(v, "medicalObservations"),
		InternalNotes:       text(v, "internalNotes"),
	}
}

// StudentFields maps a student record back onto form fields.
func StudentFields(s models.Student) FormValues {
	v := FormValues{}
	v.Set("id", s.ID)
	v.Set("firstName", s.User.FirstName)
	v.Set("lastName", s.User.LastName)
	v.Set("email", s.User.Email)
	v.Set("phone", s.User.Phone)
	v.Set("cpf", s.User.CPF)
	v.Set("whatsapp", s.User.WhatsApp)
	v.Set("birthDate", s.User.BirthDate)
	v.Set("category", s.Category)
	if s.IsActive {
		v.Set("isActive", "true")
	} else {
		v.Set("isActive", "false")
	}
	v.Set("emergencyContact", s.EmergencyContact)
	v.Set("medicalObservations", s.MedicalObservations)
	v.Set("internalNotes", s.InternalNotes)
	return v
}
