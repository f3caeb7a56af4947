package models

// Alarm state values reported by CloudWatch.
const (
	AlarmStateAlarm            = "ALARM"
	AlarmStateOK               = "OK"
	AlarmStateInsufficientData = "INSUFFICIENT_DATA"
)

// AlarmStateChangeEvent is the payload CloudWatch sends to a Lambda alarm action.
type AlarmStateChangeEvent struct {
	Source    string    `json:"source"`
	AlarmARN  string    `json:"alarmArn"`
	AccountID string    `json:"accountId"`
	Time      string    `json:"time"`
	Region    string    `json:"region"`
	AlarmData AlarmData `json:"alarmData"`
}

// AlarmData carries the alarm's name, current state and configuration.
type AlarmData struct {
	AlarmName     string             `json:"alarmName"`
	State         AlarmState         `json:"state"`
	Configuration AlarmConfiguration `json:"configuration"`
}

// AlarmState is the state the alarm transitioned into.
type AlarmState struct {
	Value     string `json:"value"`
	Timestamp string `json:"timestamp"`
	Reason    string `json:"reason"`
}

// AlarmConfiguration holds the alarm's configured description.
type AlarmConfiguration struct {
	Description string `json:"description"`
}

// IsFiring reports whether the event is a transition into the ALARM state.
func (e AlarmStateChangeEvent) IsFiring() bool {
	return e.AlarmData.State.Value == AlarmStateAlarm
}

// SlackNotificationPayload is the JSON body posted to the notification webhook.
type SlackNotificationPayload struct {
	Emoji            string `json:"emoji"`
	AlarmName        string `json:"alarmName"`
	AlarmDescription string `json:"alarmDescription"`
	CloudWatchURL    string `json:"cloudWatchUrl"`
	Region           string `json:"region"`
	AlarmTime        string `json:"alarmTime"`
	AppName          string `json:"appName"`
}

// AlarmSummary is a row of the CLI alarms listing.
type AlarmSummary struct {
	Name        string
	Region      string
	State       string
	Reason      string
	UpdatedAt   string
	Description string
}
