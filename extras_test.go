package bip21_test

import (
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/ghettovoice/bip21"
	"github.com/ghettovoice/bip21/internal/testutil/extrasmock"
)

func textIs(want string) gomock.Matcher {
	return gomock.Cond(func(p bip21.Param) bool {
		s, err := p.Text()
		return err == nil && s == want
	})
}

func opaqueOpts(extras ...bip21.ExtrasConsumer) *bip21.ParseOptions {
	return &bip21.ParseOptions{Scheme: "s", Addresses: bip21.OpaqueAddresses, Extras: extras}
}

type finalizingConsumer struct {
	*extrasmock.MockExtrasConsumer
	*extrasmock.MockExtrasFinalizer
}

func TestExtrasConsumer_CallOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	c1 := extrasmock.NewMockExtrasConsumer(ctrl)
	c2 := extrasmock.NewMockExtrasConsumer(ctrl)

	gomock.InOrder(
		c1.EXPECT().ConsumeParam(bip21.Key("label"), textIs("a")).Return(bip21.ParamUnknown, nil),
		c2.EXPECT().ConsumeParam(bip21.Key("label"), textIs("a")).Return(bip21.ParamUnknown, nil),
		c1.EXPECT().ConsumeParam(bip21.Key("req-x"), textIs("1 2")).Return(bip21.ParamUnknown, nil),
		c2.EXPECT().ConsumeParam(bip21.Key("req-x"), textIs("1 2")).Return(bip21.ParamKnown, nil),
		c1.EXPECT().ConsumeParam(bip21.Key("label"), textIs("b")).Return(bip21.ParamUnknown, nil),
		c2.EXPECT().ConsumeParam(bip21.Key("label"), textIs("b")).Return(bip21.ParamUnknown, nil),
	)

	u, err := bip21.Parse("s:a?label=a&req-x=1%202&label=b", opaqueOpts(c1, c2))
	if err != nil {
		t.Fatalf("bip21.Parse() error = %v, want nil", err)
	}
	if got := u.Label.String(); got != "a" {
		t.Errorf("u.Label = %q, want %q", got, "a")
	}
}

func TestExtrasConsumer_Error(t *testing.T) {
	t.Parallel()

	errReject := errors.New("rejected")
	ctrl := gomock.NewController(t)
	c1 := extrasmock.NewMockExtrasConsumer(ctrl)
	c2 := extrasmock.NewMockExtrasConsumer(ctrl)

	gomock.InOrder(
		c1.EXPECT().ConsumeParam(bip21.Key("a"), gomock.Any()).Return(bip21.ParamKnown, nil),
		c2.EXPECT().ConsumeParam(bip21.Key("a"), gomock.Any()).Return(bip21.ParamUnknown, nil),
		c1.EXPECT().ConsumeParam(bip21.Key("b"), gomock.Any()).Return(bip21.ParamUnknown, errReject),
	)

	_, err := bip21.Parse("s:a?a=1&b=2&c=3", opaqueOpts(c1, c2))
	var pe *bip21.ParamError
	if !errors.As(err, &pe) || pe.Key != "b" {
		t.Fatalf("bip21.Parse() error = %v, want *bip21.ParamError for key b", err)
	}
	if !errors.Is(err, bip21.ErrExtras) || !errors.Is(err, errReject) {
		t.Errorf("bip21.Parse() error = %v, want %v wrapping %v", err, bip21.ErrExtras, errReject)
	}
}

func TestExtrasConsumer_StandardKeysOffered(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	c := extrasmock.NewMockExtrasConsumer(ctrl)
	gomock.InOrder(
		c.EXPECT().ConsumeParam(bip21.KeyAmount, textIs("1")).Return(bip21.ParamUnknown, nil),
		c.EXPECT().ConsumeParam(bip21.KeyMessage, textIs("hi")).Return(bip21.ParamKnown, nil),
	)

	u, err := bip21.Parse("s:a?amount=1&message=hi", opaqueOpts(c))
	if err != nil {
		t.Fatalf("bip21.Parse() error = %v, want nil", err)
	}
	if u.Amount == nil || u.Message == nil {
		t.Errorf("bip21.Parse() = %+v, want amount and message set", u)
	}
}

func TestExtrasFinalizer(t *testing.T) {
	t.Parallel()

	t.Run("called after all params", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		c := finalizingConsumer{extrasmock.NewMockExtrasConsumer(ctrl), extrasmock.NewMockExtrasFinalizer(ctrl)}
		gomock.InOrder(
			c.MockExtrasConsumer.EXPECT().ConsumeParam(bip21.Key("a"), gomock.Any()).Return(bip21.ParamKnown, nil),
			c.MockExtrasConsumer.EXPECT().ConsumeParam(bip21.Key("b"), gomock.Any()).Return(bip21.ParamKnown, nil),
			c.MockExtrasFinalizer.EXPECT().FinalizeParams().Return(nil),
		)

		if _, err := bip21.Parse("s:a?a=1&b=2", opaqueOpts(c)); err != nil {
			t.Fatalf("bip21.Parse() error = %v, want nil", err)
		}
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		errMissing := errors.New("missing parameter")
		ctrl := gomock.NewController(t)
		c := finalizingConsumer{extrasmock.NewMockExtrasConsumer(ctrl), extrasmock.NewMockExtrasFinalizer(ctrl)}
		c.MockExtrasFinalizer.EXPECT().FinalizeParams().Return(errMissing)

		_, err := bip21.Parse("s:a", opaqueOpts(c))
		if !errors.Is(err, bip21.ErrExtras) || !errors.Is(err, errMissing) {
			t.Errorf("bip21.Parse() error = %v, want %v wrapping %v", err, bip21.ErrExtras, errMissing)
		}
	})

	t.Run("not called on unknown required param", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		c := finalizingConsumer{extrasmock.NewMockExtrasConsumer(ctrl), extrasmock.NewMockExtrasFinalizer(ctrl)}
		c.MockExtrasConsumer.EXPECT().ConsumeParam(bip21.Key("req-a"), gomock.Any()).Return(bip21.ParamUnknown, nil)

		if _, err := bip21.Parse("s:a?req-a=1", opaqueOpts(c)); !errors.Is(err, bip21.ErrUnknownRequiredParam) {
			t.Errorf("bip21.Parse() error = %v, want %v", err, bip21.ErrUnknownRequiredParam)
		}
	})
}

func TestExtrasConsumerFunc(t *testing.T) {
	t.Parallel()

	var keys []bip21.Key
	fn := bip21.ExtrasConsumerFunc(func(key bip21.Key, _ bip21.Param) (bip21.ParamKind, error) {
		keys = append(keys, key)
		return bip21.ParamKnown, nil
	})
	if _, err := bip21.Parse("s:a?req-x=1&y=2&req-x=3", opaqueOpts(fn)); err != nil {
		t.Fatalf("bip21.Parse() error = %v, want nil", err)
	}
	want := []bip21.Key{"req-x", "y", "req-x"}
	if len(keys) != len(want) {
		t.Fatalf("consumed keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("consumed keys = %v, want %v", keys, want)
			break
		}
	}
}

func TestParamCollector(t *testing.T) {
	t.Parallel()

	c := bip21.NewParamCollector("pj", "pjos")
	if _, err := bip21.Parse("s:a?req-pj=x&other=1&pjos=0&pj=y", opaqueOpts(c)); err != nil {
		t.Fatalf("bip21.Parse() error = %v, want nil", err)
	}

	fields := c.Fields()
	want := []bip21.Field{
		{Name: "pj", Value: bip21.NewParam("x"), Required: true},
		{Name: "pjos", Value: bip21.NewParam("0")},
		{Name: "pj", Value: bip21.NewParam("y")},
	}
	if len(fields) != len(want) {
		t.Fatalf("c.Fields() = %+v, want %+v", fields, want)
	}
	for i := range want {
		if !fields[i].Equal(want[i]) {
			t.Errorf("c.Fields()[%d] = %+v, want %+v", i, fields[i], want[i])
		}
	}
	if fields[0].Key() != "req-pj" || fields[1].Key() != "pjos" {
		t.Errorf("field keys = %q, %q, want %q, %q", fields[0].Key(), fields[1].Key(), "req-pj", "pjos")
	}

	if p, ok := c.Get("pj"); !ok || p.String() != "x" {
		t.Errorf("c.Get(\"pj\") = (%v, %v), want (x, true)", p, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("c.Get(\"missing\") ok = true, want false")
	}

	c.Reset()
	if got := c.Fields(); len(got) != 0 {
		t.Errorf("c.Fields() after reset = %+v, want empty", got)
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		key      bip21.Key
		required bool
		name     string
	}{
		{"amount", false, "amount"},
		{"req-ext", true, "ext"},
		{"req-", true, ""},
		{"required", false, "required"},
		{"REQ-x", false, "REQ-x"},
	}

	for _, c := range cases {
		t.Run(string(c.key), func(t *testing.T) {
			t.Parallel()

			if got := c.key.IsRequired(); got != c.required {
				t.Errorf("key.IsRequired() = %v, want %v", got, c.required)
			}
			if got := c.key.Name(); got != c.name {
				t.Errorf("key.Name() = %q, want %q", got, c.name)
			}
		})
	}

	if got := bip21.RequiredKey("ext"); got != "req-ext" {
		t.Errorf("bip21.RequiredKey(\"ext\") = %q, want %q", got, "req-ext")
	}
}
