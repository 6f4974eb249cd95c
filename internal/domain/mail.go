package domain

const MailTypeShiftInvite = "shift_invite"

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ShiftInviteMailData struct {
	FullName    string `json:"fullName"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
	AcceptURL   string `json:"acceptURL"`
	DeclineURL  string `json:"declineURL"`
}
