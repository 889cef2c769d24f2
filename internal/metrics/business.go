package metrics

// IncrementTodoCreated increments the todo creation counter
func (m *Metrics) IncrementTodoCreated() {
	m.safeExecute("IncrementTodoCreated", func() {
		m.TodoCreatedTotal.Inc()
	})
}

// IncrementAttachmentUploaded increments the attachment upload counter
func (m *Metrics) IncrementAttachmentUploaded() {
	m.safeExecute("IncrementAttachmentUploaded", func() {
		m.AttachmentUploadedTotal.Inc()
	})
}

// IncrementAttachmentDeleted increments the attachment deletion counter
func (m *Metrics) IncrementAttachmentDeleted() {
	m.safeExecute("IncrementAttachmentDeleted", func() {
		m.AttachmentDeletedTotal.Inc()
	})
}

// AddOrphanFilesSwept adds to the orphan sweep counter
func (m *Metrics) AddOrphanFilesSwept(count int) {
	m.safeExecute("AddOrphanFilesSwept", func() {
		m.OrphanFilesSweptTotal.Add(float64(count))
	})
}

// SetTodosTotal sets the current todos gauge
func (m *Metrics) SetTodosTotal(count int64) {
	m.safeExecute("SetTodosTotal", func() {
		m.TodosTotal.Set(float64(count))
	})
}

// SetAttachmentsTotal sets the current attachments gauge
func (m *Metrics) SetAttachmentsTotal(count int64) {
	m.safeExecute("SetAttachmentsTotal", func() {
		m.AttachmentsTotal.Set(float64(count))
	})
}
