package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/servibook/reserva/db"
	"github.com/servibook/reserva/models"
	"github.com/servibook/reserva/notifications"
	"github.com/servibook/reserva/utils"
)

// StartCronJobs initializes and starts the scheduler for the
// completion sweep and stay reminders.
func StartCronJobs() {
	c := cron.New()

	// Completion is time-triggered, never user-invoked: every 5 minutes,
	// move confirmed reservations whose end time has elapsed.
	if _, err := c.AddFunc("*/5 * * * *", completeElapsedReservations); err != nil {
		log.Fatalf("Failed to add completion sweep: %v", err)
	}
	// Remind clients about stays starting within the next hour.
	if _, err := c.AddFunc("* * * * *", sendReservationReminders); err != nil {
		log.Fatalf("Failed to add reminder job: %v", err)
	}

	c.Start()
	log.Println("Cron scheduler started")
}

// completeElapsedReservations runs the CONFIRMED -> COMPLETED
// transition through the same compare-and-set path as user requests, so
// a concurrent cancellation loses or wins cleanly.
func completeElapsedReservations() {
	var reservations []models.Reservation
	err := db.DB.Preload("Client").Preload("Provider").
		Where("status = ? AND end_time < ?", models.StatusConfirmed, time.Now()).
		Find(&reservations).Error
	if err != nil {
		log.Printf("Completion sweep query failed: %v", err)
		return
	}

	for i := range reservations {
		r := &reservations[i]
		if err := r.Transition(db.DB, models.StatusCompleted); err != nil {
			// A stale status here means someone cancelled in between.
			log.Printf("Could not complete reservation %d: %v", r.ID, err)
			continue
		}
		notifications.NotifyStatusChange(r)
	}
}

// sendReservationReminders emails clients whose confirmed reservation
// starts in roughly one hour.
func sendReservationReminders() {
	now := time.Now()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	var reservations []models.Reservation
	err := db.DB.Preload("Client").Preload("Provider").Preload("Service").
		Where("status = ? AND start_time BETWEEN ? AND ?", models.StatusConfirmed, startWindow, endWindow).
		Find(&reservations).Error
	if err != nil {
		log.Printf("Error fetching reservations for reminders: %v", err)
		return
	}

	for _, r := range reservations {
		if r.Client.Email == "" {
			continue
		}
		if err := sendReminderEmail(&r); err != nil {
			log.Printf("Failed to send reminder for reservation %d: %v", r.ID, err)
			continue
		}
		log.Printf("Sent reminder for reservation %d to %s", r.ID, r.Client.Email)
	}
}

func sendReminderEmail(r *models.Reservation) error {
	subject := fmt.Sprintf("Reminder: Upcoming Reservation - %s", r.PropertyName)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your reservation starting in one hour.</p>
		<ul>
			<li><strong>Property:</strong> %s</li>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Start:</strong> %s</li>
			<li><strong>End:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>The Reserva Team</p>
	`, r.Client.FullName(), r.PropertyName, r.Provider.FullName(),
		r.StartTime.Format("2006-01-02 15:04"),
		r.EndTime.Format("2006-01-02 15:04"))

	return utils.SendEmail(r.Client.Email, subject, body)
}
