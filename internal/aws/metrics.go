package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// DefaultNamespace is used when no metrics namespace is configured.
const DefaultNamespace = "Storefront"

// Metrics publishes checkout metrics to CloudWatch.
type Metrics struct {
	CW        CloudWatchAPI
	Namespace string
	nowFunc   func() time.Time
}

func NewMetrics(cw CloudWatchAPI, namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Metrics{CW: cw, Namespace: namespace, nowFunc: time.Now}
}

// PutCheckout records the amount and item count of one completed checkout.
func (m *Metrics) PutCheckout(ctx context.Context, amount float64, items int) error {
	now := m.nowFunc()
	_, err := m.CW.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: &m.Namespace,
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: awsString("CheckoutAmount"),
				Value:      sdkaws.Float64(amount),
				Unit:       cwtypes.StandardUnitNone,
				Timestamp:  &now,
			},
			{
				MetricName: awsString("CheckoutItems"),
				Value:      sdkaws.Float64(float64(items)),
				Unit:       cwtypes.StandardUnitCount,
				Timestamp:  &now,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
