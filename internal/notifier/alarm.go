package notifier

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/younsl/logsweep/internal/models"
	"github.com/younsl/logsweep/pkg/utils"
)

// AlarmEmoji prefixes every notification.
const AlarmEmoji = "🚨"

// ErrInvalidAlarmARN is returned when an alarm ARN does not have the
// arn:partition:service:region:account:alarm:name layout.
var ErrInvalidAlarmARN = errors.New("invalid alarm ARN")

// AlarmARN is a parsed CloudWatch alarm ARN.
type AlarmARN struct {
	Partition    string
	Service      string
	Region       string
	AccountID    string
	ResourceType string
	AlarmName    string
}

// ParseAlarmARN parses a CloudWatch alarm ARN. Alarm names may contain colons.
func ParseAlarmARN(alarmARN string) (AlarmARN, error) {
	parsed, err := arn.Parse(alarmARN)
	if err != nil {
		return AlarmARN{}, fmt.Errorf("%w: %w", ErrInvalidAlarmARN, err)
	}

	resourceType, name, ok := strings.Cut(parsed.Resource, ":")
	if !ok || resourceType != "alarm" || name == "" || parsed.Region == "" {
		return AlarmARN{}, fmt.Errorf("%w: %q", ErrInvalidAlarmARN, alarmARN)
	}
	return AlarmARN{
		Partition:    parsed.Partition,
		Service:      parsed.Service,
		Region:       parsed.Region,
		AccountID:    parsed.AccountID,
		ResourceType: resourceType,
		AlarmName:    name,
	}, nil
}

// ConsoleURL links to the alarm in the CloudWatch console.
func (a AlarmARN) ConsoleURL() string {
	domain := "console.aws.amazon.com"
	if a.Partition == "aws-cn" {
		domain = "console.amazonaws.cn"
	}
	return fmt.Sprintf("https://%s.%s/cloudwatch/home?region=%s#alarmsV2:alarm/%s",
		a.Region, domain, a.Region, url.PathEscape(a.AlarmName))
}

// BuildPayload shapes an alarm event into the webhook body.
//
// The alarm time comes from the state timestamp, or the event time when the state
// timestamp is missing or unparseable. If neither parses the raw state timestamp is sent.
func BuildPayload(event models.AlarmStateChangeEvent, appName string) (models.SlackNotificationPayload, error) {
	alarm, err := ParseAlarmARN(event.AlarmARN)
	if err != nil {
		return models.SlackNotificationPayload{}, err
	}

	alarmTime, err := utils.FormatAlarmTime(event.AlarmData.State.Timestamp)
	if err != nil {
		if alarmTime, err = utils.FormatAlarmTime(event.Time); err != nil {
			alarmTime = event.AlarmData.State.Timestamp
		}
	}

	name := event.AlarmData.AlarmName
	if name == "" {
		name = alarm.AlarmName
	}
	region := event.Region
	if region == "" {
		region = alarm.Region
	}

	return models.SlackNotificationPayload{
		Emoji:            AlarmEmoji,
		AlarmName:        name,
		AlarmDescription: event.AlarmData.Configuration.Description,
		CloudWatchURL:    alarm.ConsoleURL(),
		Region:           region,
		AlarmTime:        alarmTime,
		AppName:          appName,
	}, nil
}
