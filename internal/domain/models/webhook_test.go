package models

import (
	"encoding/json"
	"testing"
)

func TestWebhookPayloadText(t *testing.T) {
	cases := []struct {
		name    string
		payload WebhookPayload
		want    string
	}{
		{"english key", WebhookPayload{Message: "tanya laden wypall"}, "tanya laden wypall"},
		{"indonesian key", WebhookPayload{Pesan: "cek den filter"}, "cek den filter"},
		{"message wins over pesan", WebhookPayload{Message: "a", Pesan: "b"}, "a"},
		{"blank message falls through", WebhookPayload{Message: "   ", Pesan: "b"}, "b"},
		{"both empty", WebhookPayload{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.payload.Text(); got != tc.want {
				t.Errorf("Text() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWebhookPayloadReplyTo(t *testing.T) {
	cases := []struct {
		name    string
		payload WebhookPayload
		want    string
	}{
		{"pengirim first", WebhookPayload{Pengirim: "628111", ID: "628222", Sender: "628333"}, "628111"},
		{"id second", WebhookPayload{ID: "628222", Sender: "628333"}, "628222"},
		{"sender last", WebhookPayload{Sender: "628333"}, "628333"},
		{"blank pengirim skipped", WebhookPayload{Pengirim: " ", ID: "628222"}, "628222"},
		{"none", WebhookPayload{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.payload.ReplyTo(); got != tc.want {
				t.Errorf("ReplyTo() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWebhookPayloadDecodesGatewayBody(t *testing.T) {
	body := `{"pesan":"tanya den wypall","pengirim":"628111","device":"laden-01","name":"Budi"}`

	var p WebhookPayload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Text() != "tanya den wypall" {
		t.Errorf("Text() = %q", p.Text())
	}
	if p.ReplyTo() != "628111" {
		t.Errorf("ReplyTo() = %q", p.ReplyTo())
	}
}
