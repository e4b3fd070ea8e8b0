package loader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVParsesDayFirstDates(t *testing.T) {
	data := []byte("date,state,district,pincode,age_5_17\n15-08-2024,Bihar,Gopalganj,841001,50\n")

	table, err := LoadCSV(data, EnrollmentColumns, "Enrollment")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.Equal(t, time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC), row.Date)
	assert.Equal(t, "Bihar", row.State)
	assert.Equal(t, "Gopalganj", row.District)
	assert.Equal(t, int64(50), row.Count("age_5_17"))
}

func TestLoadCSVKeepsPincodeAsString(t *testing.T) {
	data := []byte("date,state,district,pincode,age_5_17\n01-01-2024,Sikkim,Gangtok,037101,10\n")

	table, err := LoadCSV(data, EnrollmentColumns, "Enrollment")
	require.NoError(t, err)
	assert.Equal(t, "037101", table.Rows[0].Pincode, "leading zeros must survive")
}

func TestLoadCSVTrimsHeaderWhitespace(t *testing.T) {
	data := []byte(" date , state ,district, pincode ,age_5_17\n01-01-2024,Bihar,Patna,800001,5\n")

	table, err := LoadCSV(data, EnrollmentColumns, "Enrollment")
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "state", "district", "pincode", "age_5_17"}, table.Columns)
}

func TestLoadCSVMissingColumnNamesMissingAndFound(t *testing.T) {
	data := []byte("date,state,district,age_5_17\n01-01-2024,Bihar,Patna,5\n")

	_, err := LoadCSV(data, EnrollmentColumns, "Enrollment")
	require.Error(t, err)

	schemaErr, ok := err.(*SchemaError)
	require.True(t, ok, "expected *SchemaError, got %T", err)
	assert.Equal(t, []string{"pincode"}, schemaErr.Missing)
	assert.Equal(t, []string{"date", "state", "district", "age_5_17"}, schemaErr.Found)
	assert.Contains(t, err.Error(), "pincode")
	assert.Contains(t, err.Error(), "Found columns")
}

func TestLoadCSVEmptyTable(t *testing.T) {
	data := []byte("date,state,district,pincode,age_5_17\n")

	_, err := LoadCSV(data, EnrollmentColumns, "Enrollment")
	require.Error(t, err)
	_, ok := err.(*EmptyInputError)
	assert.True(t, ok, "expected *EmptyInputError, got %T", err)
}

func TestLoadCSVMalformedDate(t *testing.T) {
	data := []byte("date,state,district,pincode,age_5_17\n2024-13-45,Bihar,Patna,800001,5\n")

	_, err := LoadCSV(data, EnrollmentColumns, "Enrollment")
	require.Error(t, err)

	parseErr, ok := err.(*ParseError)
	require.True(t, ok, "expected *ParseError, got %T", err)
	assert.Equal(t, "date", parseErr.Column)
}

func TestLoadCSVSlashSeparatedDates(t *testing.T) {
	data := []byte("date,state,district,pincode,bio_age_5_17\n5/1/2024,Bihar,Patna,800001,3\n")

	table, err := LoadCSV(data, BiometricColumns, "Biometric")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), table.Rows[0].Date)
}

func TestLoadCSVBlankCountsReadAsZero(t *testing.T) {
	data := []byte("date,state,district,pincode,age_5_17\n01-01-2024,Bihar,Patna,800001,\n")

	table, err := LoadCSV(data, EnrollmentColumns, "Enrollment")
	require.NoError(t, err)
	assert.Equal(t, int64(0), table.Rows[0].Count("age_5_17"))
}
