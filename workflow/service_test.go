package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgelabs-io/synthetics-forge/deploy"
	"github.com/forgelabs-io/synthetics-forge/logger"
	"github.com/forgelabs-io/synthetics-forge/monitor"
	"github.com/forgelabs-io/synthetics-forge/stepgen"
	"github.com/forgelabs-io/synthetics-forge/storage"
	"github.com/forgelabs-io/synthetics-forge/testutil"
)

// fakePusher scripts push outcomes for workflow tests.
type fakePusher struct {
	result     *deploy.Result
	err        error
	playwright bool

	gotRequest deploy.Request
	pushCalls  int
}

func (f *fakePusher) Push(ctx context.Context, req deploy.Request) (*deploy.Result, error) {
	f.gotRequest = req
	f.pushCalls++
	return f.result, f.err
}

func (f *fakePusher) CheckPlaywright(ctx context.Context) (bool, string) {
	if f.playwright {
		return true, "Version 1.46.0"
	}
	return false, ""
}

// fakeTextGen scripts model output for the prompt-driven path.
type fakeTextGen struct {
	output string
	err    error
	calls  int
}

func (f *fakeTextGen) GenerateText(ctx context.Context, system, user string, params stepgen.SampleParams) (string, error) {
	f.calls++
	return f.output, f.err
}

type serviceHarness struct {
	service *Service
	pusher  *fakePusher
	textGen *fakeTextGen
	store   monitor.Store
}

func newHarness(t *testing.T, creds deploy.Credentials) *serviceHarness {
	t.Helper()
	log := logger.NewTestLogger()

	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &monitor.Monitor{})
	store := monitor.NewMySQLStore(db, log)

	artifacts, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	pusher := &fakePusher{
		result: &deploy.Result{
			Outcome:    deploy.OutcomeDeployed,
			MonitorURL: "https://kibana.example.com/app/synthetics/monitor/abc",
			MonitorID:  "a1b2c3d4-e5f6-4789-8abc-def012345678",
		},
		playwright: true,
	}
	textGen := &fakeTextGen{output: validModelSteps}

	service := New(
		Config{Workdir: t.TempDir(), Credentials: creds},
		stepgen.NewHeuristic(log),
		stepgen.NewPromptDriven(textGen, log),
		stepgen.NewSanitizer(log),
		pusher,
		store,
		artifacts,
		log,
	)

	return &serviceHarness{service: service, pusher: pusher, textGen: textGen, store: store}
}

func testCreds() deploy.Credentials {
	return deploy.Credentials{
		KibanaURL: "https://kibana.example.com",
		APIKey:    "secret-api-key",
		ProjectID: "mcp-synthetics-demo",
		Space:     "default",
	}
}

const validModelSteps = `step('Check pricing is shown', async () => {
  const price = page.locator('.price');
  await expect(price.first()).toBeVisible();
});

step('Check cart button works', async () => {
  const cart = page.locator('[class*="cart"]');
  await expect(cart.first()).toBeVisible();
});`
