// Package ui is the single I/O boundary of the page objects: every gesture
// and polling assertion goes through a Driver, which applies timeouts, logs
// the step and turns failures into *StepError values.
package ui

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"pagecheck/internal/config"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// Driver issues actions and assertions against one browser page.
type Driver struct {
	page     playwright.Page
	expect   playwright.PlaywrightAssertions
	timeouts config.Timeouts
	log      logrus.FieldLogger
	// timeout overrides timeouts.Default for this copy only.
	timeout time.Duration
}

// NewDriver binds a Driver to page.
func NewDriver(page playwright.Page, timeouts config.Timeouts, log logrus.FieldLogger) *Driver {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	return &Driver{
		page:     page,
		expect:   playwright.NewPlaywrightAssertions(ms(timeouts.Default)),
		timeouts: timeouts,
		log:      log,
	}
}

// Page returns the underlying page.
func (d *Driver) Page() playwright.Page { return d.page }

// Timeouts returns the configured timeouts.
func (d *Driver) Timeouts() config.Timeouts { return d.timeouts }

// Locator builds a page-scoped locator. It does not touch the page.
func (d *Driver) Locator(selector string, hasText ...string) playwright.Locator {
	if len(hasText) > 0 {
		return d.page.Locator(selector, playwright.PageLocatorOptions{HasText: hasText[0]})
	}
	return d.page.Locator(selector)
}

// WithTimeout returns a copy of d whose steps wait up to t.
func (d *Driver) WithTimeout(t time.Duration) *Driver {
	c := *d
	c.timeout = t
	return &c
}

func (d *Driver) wait() *float64 {
	if d.timeout > 0 {
		return playwright.Float(ms(d.timeout))
	}
	return playwright.Float(ms(d.timeouts.Default))
}

func ms(t time.Duration) float64 {
	return float64(t.Milliseconds())
}

func (d *Driver) entry(step, element string) *logrus.Entry {
	fields := logrus.Fields{"step": step, "element": element}
	if d.page != nil {
		fields["page"] = d.page.URL()
	}
	return d.log.WithFields(fields)
}

// run executes one step. Assertion steps report failures as ErrAssertion.
func (d *Driver) run(step, element string, assertion bool, fn func() error) error {
	d.entry(step, element).Debug("ui step")
	if err := fn(); err != nil {
		return d.fail(step, element, assertion, err)
	}
	return nil
}

func (d *Driver) fail(step, element string, assertion bool, err error) error {
	var se *StepError
	if errors.As(err, &se) {
		return err
	}
	se = &StepError{Step: step, Element: element, Kind: classify(err, assertion), Err: err}
	d.entry(step, element).WithError(err).Warn("ui step failed")
	return se
}

// Fail wraps err as a failure of step on element. Page objects use it for
// errors that originate outside the driver, such as parse failures.
func (d *Driver) Fail(step, element string, err error) error {
	return d.fail(step, element, false, err)
}

// Click waits for the element to be actionable and clicks it.
func (d *Driver) Click(element string, loc playwright.Locator) error {
	return d.run("click", element, false, func() error {
		return loc.Click(playwright.LocatorClickOptions{Timeout: d.wait()})
	})
}

// Fill waits for the element to be editable and replaces its value.
func (d *Driver) Fill(element string, loc playwright.Locator, value string) error {
	return d.run("fill", element, false, func() error {
		return loc.Fill(value, playwright.LocatorFillOptions{Timeout: d.wait()})
	})
}

// Text returns the trimmed text content of the element.
func (d *Driver) Text(element string, loc playwright.Locator) (string, error) {
	var text string
	err := d.run("read text", element, false, func() error {
		t, err := loc.TextContent(playwright.LocatorTextContentOptions{Timeout: d.wait()})
		text = strings.TrimSpace(t)
		return err
	})
	return text, err
}

// Texts returns the trimmed text content of every element currently matched.
// It does not wait; an empty match yields an empty slice.
func (d *Driver) Texts(element string, loc playwright.Locator) ([]string, error) {
	var texts []string
	err := d.run("read texts", element, false, func() error {
		all, err := loc.AllTextContents()
		if err != nil {
			return err
		}
		for _, t := range all {
			texts = append(texts, strings.TrimSpace(t))
		}
		return nil
	})
	return texts, err
}

// Attr returns the value of attribute name. An absent attribute reads as "".
func (d *Driver) Attr(element string, loc playwright.Locator, name string) (string, error) {
	var value string
	err := d.run("read attribute "+name, element, false, func() error {
		v, err := loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: d.wait()})
		value = v
		return err
	})
	return value, err
}

// Count returns the number of elements currently matched, without waiting.
func (d *Driver) Count(element string, loc playwright.Locator) (int, error) {
	var n int
	err := d.run("count", element, false, func() error {
		c, err := loc.Count()
		n = c
		return err
	})
	return n, err
}

// All resolves loc into one locator per current match, in document order.
func (d *Driver) All(element string, loc playwright.Locator) ([]playwright.Locator, error) {
	var all []playwright.Locator
	err := d.run("resolve all", element, false, func() error {
		a, err := loc.All()
		all = a
		return err
	})
	return all, err
}

// ExpectVisible polls until the element is visible.
func (d *Driver) ExpectVisible(element string, loc playwright.Locator) error {
	return d.run("expect visible", element, true, func() error {
		return d.expect.Locator(loc).ToBeVisible(playwright.LocatorAssertionsToBeVisibleOptions{Timeout: d.wait()})
	})
}

// ExpectHidden polls until the element is hidden or detached.
func (d *Driver) ExpectHidden(element string, loc playwright.Locator) error {
	return d.run("expect hidden", element, true, func() error {
		return d.expect.Locator(loc).ToBeHidden(playwright.LocatorAssertionsToBeHiddenOptions{Timeout: d.wait()})
	})
}

// ExpectCount polls until exactly n elements match.
func (d *Driver) ExpectCount(element string, loc playwright.Locator, n int) error {
	return d.run(fmt.Sprintf("expect count %d", n), element, true, func() error {
		return d.expect.Locator(loc).ToHaveCount(n, playwright.LocatorAssertionsToHaveCountOptions{Timeout: d.wait()})
	})
}

// ExpectText polls until the element's whole text equals text.
func (d *Driver) ExpectText(element string, loc playwright.Locator, text string) error {
	return d.run(fmt.Sprintf("expect text %q", text), element, true, func() error {
		return d.expect.Locator(loc).ToHaveText(text, playwright.LocatorAssertionsToHaveTextOptions{Timeout: d.wait()})
	})
}

// ExpectTextMatch polls until the element's text matches re.
func (d *Driver) ExpectTextMatch(element string, loc playwright.Locator, re *regexp.Regexp) error {
	return d.run(fmt.Sprintf("expect text /%s/", re), element, true, func() error {
		return d.expect.Locator(loc).ToHaveText(re, playwright.LocatorAssertionsToHaveTextOptions{Timeout: d.wait()})
	})
}

// ExpectContainsText polls until the element's text contains expected, a
// string or a *regexp.Regexp.
func (d *Driver) ExpectContainsText(element string, loc playwright.Locator, expected any) error {
	return d.run(fmt.Sprintf("expect text containing %v", expected), element, true, func() error {
		return d.expect.Locator(loc).ToContainText(expected, playwright.LocatorAssertionsToContainTextOptions{Timeout: d.wait()})
	})
}

// ExpectClass polls until the element's class attribute matches re.
func (d *Driver) ExpectClass(element string, loc playwright.Locator, re *regexp.Regexp) error {
	return d.run(fmt.Sprintf("expect class /%s/", re), element, true, func() error {
		return d.expect.Locator(loc).ToHaveClass(re, playwright.LocatorAssertionsToHaveClassOptions{Timeout: d.wait()})
	})
}

// ExpectValue polls until the input's value equals value.
func (d *Driver) ExpectValue(element string, loc playwright.Locator, value string) error {
	return d.run(fmt.Sprintf("expect value %q", value), element, true, func() error {
		return d.expect.Locator(loc).ToHaveValue(value, playwright.LocatorAssertionsToHaveValueOptions{Timeout: d.wait()})
	})
}

// ExpectNotEmpty polls until the input holds a value.
func (d *Driver) ExpectNotEmpty(element string, loc playwright.Locator) error {
	return d.run("expect not empty", element, true, func() error {
		return d.expect.Locator(loc).Not().ToBeEmpty(playwright.LocatorAssertionsToBeEmptyOptions{Timeout: d.wait()})
	})
}

// ExpectEnabled polls until the control is enabled.
func (d *Driver) ExpectEnabled(element string, loc playwright.Locator) error {
	return d.run("expect enabled", element, true, func() error {
		return d.expect.Locator(loc).ToBeEnabled(playwright.LocatorAssertionsToBeEnabledOptions{Timeout: d.wait()})
	})
}

// ExpectTitle polls until the page title matches re.
func (d *Driver) ExpectTitle(re *regexp.Regexp) error {
	return d.run(fmt.Sprintf("expect title /%s/", re), "page", true, func() error {
		return d.expect.Page(d.page).ToHaveTitle(re, playwright.PageAssertionsToHaveTitleOptions{Timeout: d.wait()})
	})
}

// ExpectURL polls until the page URL matches re.
func (d *Driver) ExpectURL(re *regexp.Regexp) error {
	return d.run(fmt.Sprintf("expect url /%s/", re), "page", true, func() error {
		return d.expect.Page(d.page).ToHaveURL(re, playwright.PageAssertionsToHaveURLOptions{Timeout: d.wait()})
	})
}

// ExpectEqual compares a value that was already read from the page.
func (d *Driver) ExpectEqual(element string, expected, actual any) error {
	if fmt.Sprint(expected) == fmt.Sprint(actual) {
		return nil
	}
	se := &StepError{
		Step:     "expect equal",
		Element:  element,
		Expected: fmt.Sprintf("%q", fmt.Sprint(expected)),
		Actual:   fmt.Sprintf("%q", fmt.Sprint(actual)),
		Kind:     ErrAssertion,
	}
	d.entry(se.Step, element).Warn("ui step failed")
	return se
}

// Goto navigates to url and waits for the load event.
func (d *Driver) Goto(url string) error {
	return d.run("goto "+url, "page", false, func() error {
		_, err := d.page.Goto(url, playwright.PageGotoOptions{Timeout: playwright.Float(ms(d.timeouts.Navigation))})
		return err
	})
}

// Title returns the current document title.
func (d *Driver) Title() (string, error) {
	var title string
	err := d.run("read title", "page", false, func() error {
		t, err := d.page.Title()
		title = t
		return err
	})
	return title, err
}

// Pause waits a fixed time. It exists for the one flow that needs a settle
// delay; prefer a condition wait everywhere else.
func (d *Driver) Pause(reason string, t time.Duration) {
	if t <= 0 {
		return
	}
	d.entry("pause "+t.String(), reason).Debug("ui step")
	d.page.WaitForTimeout(ms(t))
}

// OpenInNewPage runs trigger and returns a Driver bound to the page it opens.
// The new-page listener is registered before trigger runs, then the new page
// is waited on until its load event has fired.
func (d *Driver) OpenInNewPage(element string, trigger func() error) (*Driver, error) {
	var opened playwright.Page
	err := d.run("open in new page", element, false, func() error {
		p, err := d.page.Context().ExpectPage(trigger, playwright.BrowserContextExpectPageOptions{
			Timeout: playwright.Float(ms(d.timeouts.Navigation)),
		})
		if err != nil {
			return err
		}
		opened = p
		return p.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
			State:   playwright.LoadStateLoad,
			Timeout: playwright.Float(ms(d.timeouts.Navigation)),
		})
	})
	if err != nil {
		return nil, err
	}
	return &Driver{
		page:     opened,
		expect:   d.expect,
		timeouts: d.timeouts,
		log:      d.log,
	}, nil
}

// Close closes the page bound to d.
func (d *Driver) Close() error {
	return d.page.Close()
}
