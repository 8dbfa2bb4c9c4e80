package testutil

import (
	"errors"
	"testing"
)

func TestAssertNoError(t *testing.T) {
	t.Parallel()
	AssertNoError(t, nil)
}

func TestAssertError(t *testing.T) {
	t.Parallel()
	AssertError(t, errors.New("boom"))
}

func TestFixturesAreValid(t *testing.T) {
	t.Parallel()

	AssertNoError(t, SampleRequest().Validate())
	AssertNoError(t, SampleDetections().Validate())
}

func TestFixturesAreFresh(t *testing.T) {
	t.Parallel()

	a, b := SampleRequest(), SampleRequest()
	*a.Range = 1
	if *b.Range != 200 {
		t.Errorf("SampleRequest shares state between calls: range = %v", *b.Range)
	}
}
