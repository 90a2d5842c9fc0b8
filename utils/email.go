package utils

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"
)

// SendEmail delivers one transactional email (status notifications,
// stay reminders) through the SMTP account configured in the
// environment. HTML bodies only.
func SendEmail(to, subject, body string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	msg := gomail.NewMessage()
	msg.SetHeader("From", os.Getenv("EMAIL_USER"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)
	return dialer.DialAndSend(msg)
}
