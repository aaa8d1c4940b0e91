// internal/workers/survey/submit-survey/notify.go
package submitsurvey

import (
	"context"
	"fmt"
	"strings"

	"rural-assist/internal/common/aws"
	"rural-assist/internal/common/errors"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/models"
)

const alertSubject = "Negative representative feedback"

// Notifier is told about surveys that carry a negative opinion.
type Notifier interface {
	NotifyNegative(ctx context.Context, sv *models.Survey) error
}

// AlertNotifier publishes to SNS and, when a sender is configured, emails
// through SES. Either client may be nil.
type AlertNotifier struct {
	sns      *aws.SNSClient
	ses      *aws.SESClient
	topicARN string
	from     string
	to       []string
	logger   logger.Logger
}

func NewAlertNotifier(config *Config, sns *aws.SNSClient, ses *aws.SESClient, log logger.Logger) *AlertNotifier {
	return &AlertNotifier{
		sns:      sns,
		ses:      ses,
		topicARN: config.SNSTopicARN,
		from:     config.SESFrom,
		to:       config.SESTo,
		logger:   log.WithFields(map[string]interface{}{"component": "survey-alerts"}),
	}
}

func (n *AlertNotifier) NotifyNegative(ctx context.Context, sv *models.Survey) error {
	body := alertBody(sv)

	if n.sns != nil && n.topicARN != "" {
		id, err := n.sns.PublishMessage(ctx, n.topicARN, alertSubject, body)
		if err != nil {
			return errors.NewNotificationSendFailedError("sns", err)
		}
		n.logger.Info("negative survey published", map[string]interface{}{"surveyId": sv.ID, "messageId": id})
	}

	if n.ses != nil && n.from != "" && len(n.to) > 0 {
		id, err := n.ses.SendText(ctx, n.from, n.to, alertSubject, body)
		if err != nil {
			return errors.NewNotificationSendFailedError("ses", err)
		}
		n.logger.Info("negative survey emailed", map[string]interface{}{"surveyId": sv.ID, "messageId": id})
	}
	return nil
}

// alertBody carries location and labels only. Opinion text stays in the
// database.
func alertBody(sv *models.Survey) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Survey %s recorded a negative opinion.\n", sv.ID)
	fmt.Fprintf(&b, "Pincode: %s\n", sv.UserPincode)
	if sv.DistrictName != "" || sv.StateName != "" {
		fmt.Fprintf(&b, "Area: %s\n", strings.Trim(sv.DistrictName+", "+sv.StateName, ", "))
	}
	if sv.MLAOpinionSentiment != nil {
		fmt.Fprintf(&b, "MLA %s: %s\n", orUnknown(sv.MLAName), *sv.MLAOpinionSentiment)
	}
	if sv.MPOpinionSentiment != nil {
		fmt.Fprintf(&b, "MP %s: %s\n", orUnknown(sv.MPName), *sv.MPOpinionSentiment)
	}
	fmt.Fprintf(&b, "Channel: %s", sv.Channel)
	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(not named)"
	}
	return s
}

func splitRecipients(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
