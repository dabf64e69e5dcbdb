package core

import (
	"errors"
	"testing"

	"github.com/mikey/email-utils/internal/adapters/digest"
	"github.com/mikey/email-utils/internal/adapters/validator"
	"go.uber.org/zap/zaptest"
)

type fakeListProvider struct {
	lists map[ListKind][]string
	paths map[string][]string
	err   error
	loads map[ListKind]int
}

func newFakeListProvider(disposable, allowlist []string) *fakeListProvider {
	return &fakeListProvider{
		lists: map[ListKind][]string{
			ListDisposable: disposable,
			ListAllowlist:  allowlist,
		},
		paths: map[string][]string{},
		loads: map[ListKind]int{},
	}
}

func (f *fakeListProvider) Load(kind ListKind) ([]string, error) {
	f.loads[kind]++
	if f.err != nil {
		return nil, f.err
	}
	return f.lists[kind], nil
}

func (f *fakeListProvider) LoadPath(path string) ([]string, error) {
	domains, ok := f.paths[path]
	if !ok {
		return nil, errors.New("no such list")
	}
	return domains, nil
}

type fakeResolver struct {
	mx    map[string]bool
	calls int
}

func (f *fakeResolver) HasMX(domain string) bool {
	f.calls++
	return f.mx[domain]
}

type fakeIDNA struct {
	ascii map[string]string
}

func (f *fakeIDNA) ToASCII(domain string) (string, error) {
	if out, ok := f.ascii[domain]; ok {
		return out, nil
	}
	return "", errors.New("idna: invalid label")
}

type testEngine struct {
	*Engine
	provider *fakeListProvider
	resolver *fakeResolver
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()

	provider := newFakeListProvider(
		[]string{"10minutemail.com", "mailinator.com", "33mail.com"},
		[]string{"33mail.com"},
	)
	resolver := &fakeResolver{mx: map[string]bool{
		"example.com": true,
		"gmail.com":   true,
	}}

	engine := NewEngine(DefaultEngineConfig(), Collaborators{
		Validator: validator.New(zaptest.NewLogger(t)),
		Lists:     provider,
		Salt:      digest.NewStaticSalt("default-salt"),
		Digester:  digest.NewHMAC(),
		Resolver:  resolver,
		IDNA:      &fakeIDNA{ascii: map[string]string{"münchen.de": "xn--mnchen-3ya.de"}},
	}, zaptest.NewLogger(t))

	return &testEngine{Engine: engine, provider: provider, resolver: resolver}
}
