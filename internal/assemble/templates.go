package assemble

import "github.com/oshokin/delivery-flow/internal/domain/flow"

// messageTemplate holds the category-specific message placeholders.
type messageTemplate struct {
	message      string
	patientMRN   string
	patientName  string
	shortMessage string
	subject      string
	// location is appended to NoDeliveries texts.
	location string
}

const (
	roomLocation    = "#{bed.room.name}"
	bedRoomLocation = "#{bed.room.name} - #{bed.bed_number}"
)

// templateFor returns the templates of the category.
// Clinicals read the clinical patient; Clinicals and Orders add bed and room.
func templateFor(category flow.Category) messageTemplate {
	switch category {
	case flow.Clinicals:
		return messageTemplate{
			message:      "Patient: #{clinical_patient.first_name} #{clinical_patient.last_name}\nMRN: #{clinical_patient.mrn}\nRoom/Bed: " + bedRoomLocation,
			patientMRN:   "#{clinical_patient.mrn}",
			patientName:  "#{clinical_patient.first_name} #{clinical_patient.last_name}",
			shortMessage: "#{alert_type} " + bedRoomLocation,
			subject:      "#{alert_type} " + bedRoomLocation,
			location:     bedRoomLocation,
		}
	case flow.Orders:
		return messageTemplate{
			message:      "Order: #{order.description}\nPatient: #{bed.patient.first_name} #{bed.patient.last_name}\nMRN: #{bed.patient.mrn}",
			patientMRN:   "#{bed.patient.mrn}",
			patientName:  "#{bed.patient.first_name} #{bed.patient.last_name}",
			shortMessage: "#{alert_type} " + bedRoomLocation,
			subject:      "#{alert_type} " + bedRoomLocation,
			location:     bedRoomLocation,
		}
	default:
		return messageTemplate{
			message:      "Patient: #{bed.patient.first_name} #{bed.patient.last_name}\nMRN: #{bed.patient.mrn}\nRoom: " + roomLocation,
			patientMRN:   "#{bed.patient.mrn}",
			patientName:  "#{bed.patient.first_name} #{bed.patient.last_name}",
			shortMessage: "#{alert_type}",
			subject:      "#{alert_type}",
			location:     roomLocation,
		}
	}
}

// parameters returns the message family in emission order.
func (t messageTemplate) parameters() []flow.ParameterAttribute {
	return []flow.ParameterAttribute{
		parameter("message", flow.Literal(t.message)),
		parameter("patientMRN", flow.Literal(t.patientMRN)),
		parameter("patientName", flow.Literal(t.patientName)),
		parameter("shortMessage", flow.Literal(t.shortMessage)),
		parameter("subject", flow.Literal(t.subject)),
	}
}

// noDeliveriesParameters are the texts of the synthesized NoDeliveries destination.
func (t messageTemplate) noDeliveriesParameters(order int) []flow.ParameterAttribute {
	return []flow.ParameterAttribute{
		destinationParameter("destinationName", flow.Literal("NoCaregivers"), order),
		destinationParameter("message", flow.Literal("#{alert_type} in "+t.location+" was received without any caregivers assigned"), order),
		destinationParameter("shortMessage", flow.Literal("NoCaregiver Assigned for #{alert_type} "+t.location), order),
		destinationParameter("subject", flow.Literal("NoCaregiver assigned for #{alert_type} "+t.location), order),
	}
}
