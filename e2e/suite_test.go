package e2e

import (
	"bytes"
	"fmt"
	"os"

	"pagecheck/internal/config"
	"pagecheck/internal/pages"
	"pagecheck/internal/pages/hr"
	"pagecheck/internal/pages/travel"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

// Scenarios holds the inputs of the data-driven specs.
type Scenarios struct {
	TourLinks  []travel.TourLink  `yaml:"tour_links"`
	PopupLinks []travel.PopupLink `yaml:"popup_links"`
	Filters    struct {
		AdventureStyles []string `yaml:"adventure_styles"`
		OperatedIn      []string `yaml:"operated_in"`
		Applied         int      `yaml:"applied"`
	} `yaml:"filters"`
	MenuSearch string          `yaml:"menu_search"`
	Employee   hr.EmployeeData `yaml:"employee"`
	User       hr.UserData     `yaml:"user"`
}

func loadScenarios(path string) (*Scenarios, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenarios
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &s, nil
}

// UISuite owns one browser per suite and a fresh context and page per test.
type UISuite struct {
	suite.Suite
	cfg       config.Suite
	log       *logrus.Logger
	scenarios *Scenarios

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	app     *pages.App
}

// SetupSuite runs once before all tests
func (s *UISuite) SetupSuite() {
	s.Require().NoError(config.LoadDotEnv())
	cfg, err := config.LoadSuite()
	s.Require().NoError(err)
	if cfg.TravelBaseURL == "" {
		s.T().Skip("TRAVEL_BASE_URL is not set")
	}
	s.cfg = cfg

	s.log = logrus.New()
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	s.Require().NoError(err, "invalid UI_LOG_LEVEL")
	s.log.SetLevel(lvl)

	s.scenarios, err = loadScenarios("testdata/scenarios.yaml")
	s.Require().NoError(err)

	pw, err := playwright.Run()
	s.Require().NoError(err, "could not launch playwright")
	s.pw = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	s.Require().NoError(err, "could not launch chromium")
	s.browser = browser
}

// TearDownSuite runs once after all tests
func (s *UISuite) TearDownSuite() {
	if s.browser != nil {
		s.browser.Close()
	}
	if s.pw != nil {
		s.pw.Stop()
	}
}

// SetupTest gives every test its own context, so cookies and tabs never leak.
func (s *UISuite) SetupTest() {
	ctx, err := s.browser.NewContext()
	s.Require().NoError(err, "could not create browser context")
	s.context = ctx

	page, err := ctx.NewPage()
	s.Require().NoError(err, "could not create page")
	s.app = pages.New(page, s.cfg, s.log.WithField("test", s.T().Name()))
}

// TearDownTest runs after each test
func (s *UISuite) TearDownTest() {
	if s.context != nil {
		s.context.Close()
	}
}
