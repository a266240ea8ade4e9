package realtimesvc

import "encoding/json"

// Inbound event kinds delivered by the notification server.
const (
	EventNotification     = "notification"
	EventGradeUpdated     = "grade_updated"
	EventEnrollmentStatus = "enrollment_status"
)

// Outbound commands.
const (
	cmdJoinRoom  = "join_room"
	cmdLeaveRoom = "leave_room"
)

type (
	// Notification is a generic backend-initiated notice.
	Notification struct {
		Message string `json:"message"`
	}

	// GradeUpdate announces a newly graded assignment.
	GradeUpdate struct {
		Assignment string  `json:"assignment"`
		Grade      float64 `json:"grade"`
	}

	// EnrollmentUpdate announces a server-side enrollment status decision.
	EnrollmentUpdate struct {
		Course string `json:"course"`
		Status string `json:"status"`
	}
)

// frame is the wire format: an event name plus its JSON payload.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// authFrame is sent once right after the socket opens.
type authFrame struct {
	Auth struct {
		Token string `json:"token"`
	} `json:"auth"`
}
