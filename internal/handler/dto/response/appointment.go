package response

import (
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/usecase/queries"
)

type SlotResponse struct {
	Date string `json:"date"`
	Time string `json:"time"`
	At   string `json:"at"`
}

func slotFrom(t time.Time) SlotResponse {
	d, hm := appointment.SplitInstant(t)
	return SlotResponse{Date: d, Time: hm, At: t.UTC().Format(time.RFC3339)}
}

type AppointmentResponse struct {
	ID               string         `json:"id"`
	ProfessionalID   string         `json:"professionalId"`
	ProfessionalName string         `json:"professionalName"`
	OwnerID          string         `json:"ownerId"`
	OwnerName        string         `json:"ownerName"`
	AnimalIDs        []string       `json:"animalIds"`
	MainSlot         SlotResponse   `json:"mainSlot"`
	AlternativeSlots []SlotResponse `json:"alternativeSlots"`
	DurationMinutes  int            `json:"durationMinutes"`
	Status           string         `json:"status"`
	Comment          string         `json:"comment"`
	Report           *string        `json:"report,omitempty"`
	ProposedBy       *string        `json:"proposedBy,omitempty"`
	CancelReason     *string        `json:"cancelReason,omitempty"`
	CreatedAt        int64          `json:"createdAt"`
	UpdatedAt        int64          `json:"updatedAt"`
}

func FromAppointmentView(v *queries.AppointmentView) *AppointmentResponse {
	animals := make([]string, len(v.AnimalIDs))
	for i, id := range v.AnimalIDs {
		animals[i] = id.String()
	}
	alts := make([]SlotResponse, len(v.AlternativeSlots))
	for i, t := range v.AlternativeSlots {
		alts[i] = slotFrom(t)
	}
	return &AppointmentResponse{
		ID:               v.ID.String(),
		ProfessionalID:   v.ProfessionalID.String(),
		ProfessionalName: v.ProfessionalName,
		OwnerID:          v.OwnerID.String(),
		OwnerName:        v.OwnerName,
		AnimalIDs:        animals,
		MainSlot:         slotFrom(v.MainSlot),
		AlternativeSlots: alts,
		DurationMinutes:  v.DurationMinutes,
		Status:           v.Status,
		Comment:          v.Comment,
		Report:           v.Report,
		ProposedBy:       v.ProposedBy,
		CancelReason:     v.CancelReason,
		CreatedAt:        v.CreatedAt.Unix(),
		UpdatedAt:        v.UpdatedAt.Unix(),
	}
}

type AppointmentListResponse struct {
	Items      []*AppointmentResponse `json:"items"`
	NextCursor *string                `json:"nextCursor,omitempty"`
}

func FromAppointmentList(views []*queries.AppointmentView, next *queries.Cursor) *AppointmentListResponse {
	items := make([]*AppointmentResponse, len(views))
	for i, v := range views {
		items[i] = FromAppointmentView(v)
	}
	res := &AppointmentListResponse{Items: items}
	if next != nil {
		res.NextCursor = &next.After
	}
	return res
}

type BookedSlotsResponse struct {
	ProfessionalID string   `json:"professionalId"`
	Date           string   `json:"date"`
	Slots          []string `json:"slots"`
}

func FromBookedSlots(v *queries.BookedSlotsView) *BookedSlotsResponse {
	slots := v.Slots
	if slots == nil {
		slots = []string{}
	}
	return &BookedSlotsResponse{
		ProfessionalID: v.ProfessionalID.String(),
		Date:           v.Date,
		Slots:          slots,
	}
}
