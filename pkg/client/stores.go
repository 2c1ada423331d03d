package client

const (
	cacheKeyAppointments = "cache_appointments"
	cacheKeyMedications  = "cache_medications"
)

// NewAppointmentStore builds an optimistic collection over the appointment
// endpoints, cached under its own storage key.
func NewAppointmentStore(c *Client) *OptimisticStore[Appointment] {
	return NewOptimisticStore(StoreConfig[Appointment]{
		CacheKey: cacheKeyAppointments,
		Fetch:    c.Appointments,
		Create:   c.CreateAppointment,
		Update:   c.UpdateAppointment,
		Delete:   c.DeleteAppointment,
	}, c.storage)
}

func NewMedicationStore(c *Client) *OptimisticStore[Medication] {
	return NewOptimisticStore(StoreConfig[Medication]{
		CacheKey: cacheKeyMedications,
		Fetch:    c.Medications,
		Create:   c.CreateMedication,
		Update:   c.UpdateMedication,
		Delete:   c.DeleteMedication,
	}, c.storage)
}
