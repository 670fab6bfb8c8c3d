package extractor

import (
	"context"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
)

type fakeChatModel struct {
	reply string
	err   error
}

func (f *fakeChatModel) Generate(_ context.Context, _ []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported in tests")
}

func TestExtractFullName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cases := []struct {
		name  string
		reply string
		want  string
	}{
		{"full name", "John Smith", "John Smith"},
		{"padded full name", "  Sarah Johnson \n", "Sarah Johnson"},
		{"none sentinel", "NONE", ""},
		{"lowercase none", "none", ""},
		{"single token", "John", ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ext, err := New(ctx, &fakeChatModel{reply: tc.reply})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			got, err := ext.ExtractFullName(ctx, "find that customer")
			if err != nil {
				t.Fatalf("ExtractFullName: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ExtractFullName() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractFullNameModelFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ext, err := New(ctx, &fakeChatModel{err: errors.New("timeout")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := ext.ExtractFullName(ctx, "find that customer"); !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("error = %v, want ErrModelInvoke", err)
	}
}
