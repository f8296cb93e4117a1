package simulator

import (
	"github.com/chrisdamba/surplussim/internal/models"
)

// lifecycleEvents schedules every state change of the run on the event queue
// and drains it, giving one time-ordered stream across all bundles.
func (s *Simulator) lifecycleEvents(result *models.SimulationResult) []models.Event {
	reservationOf := make(map[string]models.Reservation, len(result.Reservations))
	bundleOfReservation := make(map[string]string, len(result.Reservations))
	for _, r := range result.Reservations {
		reservationOf[r.BundleID] = r
		bundleOfReservation[r.ID] = r.BundleID
	}
	bundleOf := make(map[string]models.Bundle, len(result.Bundles))

	for _, b := range result.Bundles {
		bundleOf[b.ID] = b
		s.EventQueue.Enqueue(&models.Event{Time: b.PostingTime, Type: models.EventBundlePosted, EntityID: b.ID, Data: b})

		r, reserved := reservationOf[b.ID]
		if !reserved {
			s.EventQueue.Enqueue(&models.Event{Time: b.CollectionEnd, Type: models.EventBundleExpired, EntityID: b.ID, Data: b})
			continue
		}
		s.EventQueue.Enqueue(&models.Event{Time: r.ReservationTime, Type: models.EventBundleReserved, EntityID: r.ID, Data: r})
		if r.IsCollected() {
			s.EventQueue.Enqueue(&models.Event{Time: *r.CollectionTime, Type: models.EventBundleCollected, EntityID: r.ID, Data: r})
		} else {
			s.EventQueue.Enqueue(&models.Event{Time: b.CollectionEnd, Type: models.EventBundleNoShow, EntityID: r.ID, Data: r})
		}
	}

	// disputes are raised once the collection window has closed
	for _, d := range result.Disputes {
		raisedAt := bundleOf[bundleOfReservation[d.ReservationID]].CollectionEnd
		s.EventQueue.Enqueue(&models.Event{Time: raisedAt, Type: models.EventDisputeRaised, EntityID: d.ID, Data: d})
	}

	events := make([]models.Event, 0, s.EventQueue.Len())
	for !s.EventQueue.IsEmpty() {
		events = append(events, *s.EventQueue.Dequeue())
	}
	return events
}
