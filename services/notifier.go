package services

import (
	"context"
	"encoding/json"
	"fmt"

	awspkg "jewelry-backend/pkg/aws"
)

// PushNotifier delivers a push notification to a mobile device. Delivery is
// best-effort: failures are logged, never surfaced to the API caller.
type PushNotifier interface {
	Notify(ctx context.Context, deviceToken, title, body string) error
}

// SNSNotifier publishes push payloads to an SNS topic consumed by the mobile
// delivery pipeline.
type SNSNotifier struct {
	publisher awspkg.SNSPublisher
	topicArn  string
}

func NewSNSNotifier(publisher awspkg.SNSPublisher, topicArn string) *SNSNotifier {
	return &SNSNotifier{publisher: publisher, topicArn: topicArn}
}

func (n *SNSNotifier) Notify(ctx context.Context, deviceToken, title, body string) error {
	if n.topicArn == "" {
		return fmt.Errorf("sns topic arn not configured")
	}
	payload, err := json.Marshal(map[string]string{
		"deviceToken": deviceToken,
		"title":       title,
		"body":        body,
	})
	if err != nil {
		return err
	}
	return n.publisher.Publish(ctx, n.topicArn, payload)
}
