package taskform

// Reduce чистая функция перехода состояния формы
// Входное состояние не изменяется
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case UpdateForm:
		return a.Patch.ApplyTo(state)

	case ResetForm:
		return InitialState()

	case SetForm:
		next := a.Patch.ApplyTo(state)
		if a.Service != nil {
			next.SelectedService = cloneSlice([]int64(*a.Service))
		}
		return next

	case SetFieldValue:
		return a.Patch.ApplyTo(state)

	default:
		return state.Clone()
	}
}

// ApplyTo накладывает заданные поля patch на копию состояния
func (p Patch) ApplyTo(state State) State {
	s := state.Clone()

	if p.ID != nil {
		s.ID = *p.ID
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.SelectedService != nil {
		s.SelectedService = cloneSlice(*p.SelectedService)
	}
	if p.PaymentMethod != nil {
		s.PaymentMethod = *p.PaymentMethod
	}
	if p.Cost != nil {
		s.Cost = *p.Cost
	}
	if p.StartDate != nil {
		s.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		s.EndDate = *p.EndDate
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
	if p.ResponsibleID != nil {
		s.ResponsibleID = *p.ResponsibleID
	}
	if p.ParticipantIDs != nil {
		s.ParticipantIDs = cloneSlice(*p.ParticipantIDs)
	}
	if p.ClientID != nil {
		s.ClientID = *p.ClientID
	}
	if p.ClientName != nil {
		s.ClientName = *p.ClientName
	}
	if p.ClientAddress != nil {
		s.ClientAddress = *p.ClientAddress
	}
	if p.ClientPhone != nil {
		s.ClientPhone = *p.ClientPhone
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.SelectedInventory != nil {
		s.SelectedInventory = cloneSlice(*p.SelectedInventory)
	}
	if p.Photos != nil {
		s.Photos = cloneSlice(*p.Photos)
	}

	return s
}

// FullPatch patch, задающий все поля состояния
// SetForm с таким patch полностью заменяет форму
func FullPatch(s State) Patch {
	c := s.Clone()
	return Patch{
		ID:                &c.ID,
		Status:            &c.Status,
		SelectedService:   &c.SelectedService,
		PaymentMethod:     &c.PaymentMethod,
		Cost:              &c.Cost,
		StartDate:         &c.StartDate,
		EndDate:           &c.EndDate,
		StartTime:         &c.StartTime,
		EndTime:           &c.EndTime,
		ResponsibleID:     &c.ResponsibleID,
		ParticipantIDs:    &c.ParticipantIDs,
		ClientID:          &c.ClientID,
		ClientName:        &c.ClientName,
		ClientAddress:     &c.ClientAddress,
		ClientPhone:       &c.ClientPhone,
		Description:       &c.Description,
		SelectedInventory: &c.SelectedInventory,
		Photos:            &c.Photos,
	}
}
