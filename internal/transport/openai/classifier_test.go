package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestParseLabelList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"navy, wool, slim fit", []string{"navy", "wool", "slim fit"}},
		{"Navy, WOOL", []string{"navy", "wool"}},
		{"navy, , wool,", []string{"navy", "wool"}},
		{`"navy", 'wool'.`, []string{"navy", "wool"}},
		{"", nil},
		{"   ", nil},
	}
	for _, c := range cases {
		if got := parseLabelList(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("parseLabelList(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseLabelList_CapsRunawayAnswers(t *testing.T) {
	long := ""
	for i := 0; i < 50; i++ {
		long += "tag, "
	}
	if got := parseLabelList(long); len(got) != maxLabels {
		t.Errorf("len = %d, want %d", len(got), maxLabels)
	}
}

func TestClassify_ParsesCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "navy, suit, formal"}}]
		}`))
	}))
	defer srv.Close()

	c := New(&Config{APIKey: "test", BaseURL: srv.URL, Logger: zap.NewNop()})
	got := c.Classify(context.Background(), "https://cdn.example.com/p1.jpg")
	if !reflect.DeepEqual(got, []string{"navy", "suit", "formal"}) {
		t.Errorf("Classify = %v", got)
	}
}

func TestClassify_APIErrorDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(&Config{APIKey: "test", BaseURL: srv.URL, Timeout: time.Second, Logger: zap.NewNop()})
	if got := c.Classify(context.Background(), "img"); len(got) != 0 {
		t.Errorf("Classify on 502 = %v, want empty", got)
	}
}
