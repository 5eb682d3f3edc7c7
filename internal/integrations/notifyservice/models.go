package notifyservice

// Priority приоритет уведомления
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Channel канал доставки уведомления
type Channel string

const (
	ChannelPush  Channel = "push"
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// Типы уведомлений, отправляемых сервисом расписания
const (
	TypeJobScheduled      = "job_scheduled"
	TypeRescheduleRequest = "reschedule_request"
	TypeRescheduleResult  = "reschedule_result"
	TypeJobStartReminder  = "job_start_reminder"
	TypeLatenessAlert     = "lateness_alert"
)

// Notification payload уведомления для диспетчера
type Notification struct {
	TargetUserID int64             `json:"targetUserId"`
	Type         string            `json:"type"`
	Title        string            `json:"title"`
	Message      string            `json:"message"`
	Data         map[string]string `json:"data,omitempty"`
	Priority     Priority          `json:"priority"`
	Channels     []Channel         `json:"channels,omitempty"`
}
