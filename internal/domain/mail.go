package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type InvitationMailData struct {
	PollTitle       string `json:"pollTitle"`
	ParticipantName string `json:"participantName"`
	Location        string `json:"location"`
	Date            string `json:"date"`
	TimeOfDay       string `json:"timeOfDay"`
	ICS             string `json:"ics"`
}

type ReminderMailData struct {
	PollTitle       string `json:"pollTitle"`
	ParticipantName string `json:"participantName"`
	PollURL         string `json:"pollURL"`
}
