// Package notifications emails the counterparties of a reservation when
// its status changes. Sends are fire-and-forget: a failed notification
// is logged and never fails the transition that triggered it.
package notifications

import (
	"fmt"
	"log"

	"github.com/servibook/reserva/models"
	"github.com/servibook/reserva/utils"
)

var statusSubjects = map[models.ReservationStatus]string{
	models.StatusConfirmed: "Your reservation has been confirmed",
	models.StatusRejected:  "Your reservation has been declined",
	models.StatusCancelled: "Your reservation has been cancelled",
	models.StatusCompleted: "Your reservation is complete",
}

// NotifyStatusChange emails client and provider about the new status.
// Runs in the background; the reservation must have Client and Provider
// preloaded.
func NotifyStatusChange(reservation *models.Reservation) {
	go func() {
		subject, ok := statusSubjects[reservation.Status]
		if !ok {
			subject = fmt.Sprintf("Reservation update: %s", reservation.Status)
		}
		for _, user := range []models.User{reservation.Client, reservation.Provider} {
			if user.Email == "" {
				continue
			}
			body := statusBody(reservation, &user)
			if err := utils.SendEmail(user.Email, subject, body); err != nil {
				log.Printf("Failed to notify %s about reservation %d: %v", user.Email, reservation.ID, err)
			}
		}
	}()
}

func statusBody(r *models.Reservation, to *models.User) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The status of reservation #%d (%s) is now <strong>%s</strong>.</p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s – %s</li>
			<li><strong>Total:</strong> %d.%02d €</li>
		</ul>
		<p>Best regards,</p>
		<p>The Reserva Team</p>
	`, to.FullName(), r.ID, r.PropertyName, r.Status,
		r.ReservationDate.Format("2006-01-02"),
		r.StartTime.Format("15:04"), r.EndTime.Format("15:04"),
		r.TotalPriceCents/100, r.TotalPriceCents%100)
}
