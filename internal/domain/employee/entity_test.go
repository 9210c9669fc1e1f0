package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIC(t *testing.T) {
	assert.Equal(t, "950101101234", NormalizeIC("950101-10-1234"))
	assert.Equal(t, "950101101234", NormalizeIC("950101 10 1234"))
	assert.Equal(t, "950101101234", NormalizeIC("950101101234"))
}

func TestAgeFromIC(t *testing.T) {
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// 1995-01-01 birth date.
	assert.Equal(t, 30, AgeFromIC("950101-10-1234", at))
	// 2002 reads as 20xx.
	assert.Equal(t, 22, AgeFromIC("020715-08-5678", at))
	// Birthday not yet reached in the year.
	assert.Equal(t, 29, AgeFromIC("951231-10-1234", at))
	// Garbage in, zero out.
	assert.Equal(t, 0, AgeFromIC("abc", at))
	assert.Equal(t, 0, AgeFromIC("991345-10-1234", at))
}

func TestServiceMonths(t *testing.T) {
	join := time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC)
	e := Employee{JoinDate: &join}

	assert.Equal(t, 38, e.ServiceMonths(time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)))
	// Day-of-month not yet reached rolls back one month.
	assert.Equal(t, 37, e.ServiceMonths(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))

	var none Employee
	assert.Equal(t, 0, none.ServiceMonths(time.Now()))
}
