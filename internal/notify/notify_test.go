package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	require.NoError(t, n.Send(context.Background(), "asha@example.com", "Your Order Confirmation", "body"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "asha@example.com", logs.All()[0].ContextMap()["to"])
}

type fakeSender struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeSender) DialAndSendWithContext(_ context.Context, msgs ...*mail.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msgs...)
	return nil
}

func TestSMTPNotifier_Send(t *testing.T) {
	fs := &fakeSender{}
	n := &SMTPNotifier{from: "shop@example.com", client: fs}

	require.NoError(t, n.Send(context.Background(), "asha@example.com", "Your Order Confirmation", "Order ID: 1"))
	require.Len(t, fs.sent, 1)

	rcpts, err := fs.sent[0].GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"asha@example.com"}, rcpts)
	assert.Equal(t, []string{"Your Order Confirmation"}, fs.sent[0].GetGenHeader(mail.HeaderSubject))
}

func TestSMTPNotifier_Errors(t *testing.T) {
	fs := &fakeSender{err: errors.New("535 auth failed")}
	n := &SMTPNotifier{from: "shop@example.com", client: fs}
	assert.ErrorContains(t, n.Send(context.Background(), "asha@example.com", "s", "b"), "535")

	n = &SMTPNotifier{from: "shop@example.com", client: &fakeSender{}}
	assert.Error(t, n.Send(context.Background(), "not an address", "s", "b"))
}

func TestNewSMTPNotifier(t *testing.T) {
	n, err := NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p", From: "shop@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, n.client)
}

type fakeSNS struct {
	in  *sns.PublishInput
	err error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

func TestSNSNotifier(t *testing.T) {
	f := &fakeSNS{}
	n := NewSNSNotifier(f, "arn:aws:sns:ap-south-1:123456789012:orders")

	require.NoError(t, n.Send(context.Background(), "asha@example.com", "Your Order Confirmation", "body"))
	assert.Equal(t, "arn:aws:sns:ap-south-1:123456789012:orders", aws.ToString(f.in.TopicArn))
	assert.Equal(t, "body", aws.ToString(f.in.Message))
	assert.Equal(t, "asha@example.com", aws.ToString(f.in.MessageAttributes["email"].StringValue))

	f.err = errors.New("AuthorizationError")
	assert.ErrorContains(t, n.Send(context.Background(), "a@b.c", "s", "b"), "AuthorizationError")
}
