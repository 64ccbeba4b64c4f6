package api

import (
	"testing"
	"time"

	"go.uber.org/zap"

	apierrors "github.com/diogo/spielberg/internal/errors"
	"github.com/diogo/spielberg/internal/models"
)

// TestNewClient tests the NewClient function
func TestNewClient(t *testing.T) {
	tests := []struct {
		name      string
		apiKey    string
		opts      []ClientOption
		wantErr   bool
		wantModel models.Model
		timeout   time.Duration
	}{
		{
			name:      "valid key with defaults",
			apiKey:    "key-123",
			wantModel: models.DefaultModel,
			timeout:   DefaultTimeout,
		},
		{
			name:      "with custom model",
			apiKey:    "key-123",
			opts:      []ClientOption{WithModel(models.Model25Pro)},
			wantModel: models.Model25Pro,
			timeout:   DefaultTimeout,
		},
		{
			name:      "unspecified model keeps default",
			apiKey:    "key-123",
			opts:      []ClientOption{WithModel(models.ModelUnspecified)},
			wantModel: models.DefaultModel,
			timeout:   DefaultTimeout,
		},
		{
			name:      "with custom timeout",
			apiKey:    "key-123",
			opts:      []ClientOption{WithTimeout(30 * time.Second)},
			wantModel: models.DefaultModel,
			timeout:   30 * time.Second,
		},
		{
			name:    "empty key",
			apiKey:  "",
			wantErr: true,
		},
		{
			name:    "blank key",
			apiKey:  "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.apiKey, tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !apierrors.IsConfigError(err) {
					t.Errorf("NewClient() error should be a config error, got %T", err)
				}
				return
			}
			defer client.Close()

			if client.GetModel().Name != tt.wantModel.Name {
				t.Errorf("GetModel() = %s, want %s", client.GetModel().Name, tt.wantModel.Name)
			}
			if client.timeout != tt.timeout {
				t.Errorf("timeout = %v, want %v", client.timeout, tt.timeout)
			}
			if client.baseURL != models.EndpointBase {
				t.Errorf("baseURL = %s, want %s", client.baseURL, models.EndpointBase)
			}
		})
	}
}

func TestGeminiClient_WithBaseURLTrimsSlash(t *testing.T) {
	client, err := NewClient("key", WithBaseURL("http://localhost:9999/v1beta/"), WithHTTPClient(&MockHttpClient{}))
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}

	got := client.endpoint(models.Model20Flash)
	want := "http://localhost:9999/v1beta/models/gemini-2.0-flash:generateContent"
	if got != want {
		t.Errorf("endpoint() = %s, want %s", got, want)
	}
}

func TestGeminiClient_Close(t *testing.T) {
	mockHTTP := &MockHttpClient{}
	client, err := NewClient("key", WithHTTPClient(mockHTTP))
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		client.Close()
		if !client.IsClosed() {
			t.Errorf("IsClosed() should return true after Close() #%d", i+1)
		}
	}

	if mockHTTP.IdleClose != 1 {
		t.Errorf("CloseIdleConnections called %d times, want 1", mockHTTP.IdleClose)
	}
}

func TestGeminiClient_SetModel(t *testing.T) {
	client, err := NewClient("key", WithHTTPClient(&MockHttpClient{}))
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}

	client.SetModel(models.Model25Flash)
	if client.GetModel().Name != models.Model25Flash.Name {
		t.Errorf("GetModel() = %s, want %s", client.GetModel().Name, models.Model25Flash.Name)
	}

	client.SetModel(models.ModelUnspecified)
	if client.GetModel().Name != models.Model25Flash.Name {
		t.Error("SetModel(unspecified) should not change the model")
	}
}

func TestGeminiClient_StartChat(t *testing.T) {
	client, err := NewClient("key", WithHTTPClient(&MockHttpClient{}), WithLogger(zap.NewNop()))
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}

	a := client.StartChat()
	b := client.StartChat(WithSessionModel(models.Model25Pro))

	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("sessions need distinct ids, got %q and %q", a.ID(), b.ID())
	}
	if a.GetModel().Name != models.DefaultModel.Name {
		t.Errorf("session model = %s, want client default", a.GetModel().Name)
	}
	if b.GetModel().Name != models.Model25Pro.Name {
		t.Errorf("session model = %s, want %s", b.GetModel().Name, models.Model25Pro.Name)
	}
	if len(a.History()) != 0 {
		t.Error("new session should have empty history")
	}
}
