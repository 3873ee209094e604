package serialization

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
	"github.com/tutorspet/tutorspet/internal/testutil"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	original := testutil.TypicalTutorsPet()

	data, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, original.Equal(decoded))

	again, err := Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
	assert.Equal(t, Fingerprint(data), Fingerprint(again))
}

func TestEncode_EmptyAggregate(t *testing.T) {
	data, err := Encode(tutorspet.New())
	require.NoError(t, err)
	assert.JSONEq(t, `{"students":[],"moduleClasses":[]}`, string(data))
}

const validStudent = `{"uuid":"6f1c1a52-3d5c-4f3e-9a53-1b7b2a9e0a01","name":"Amy Bee","phone":"11111111","email":"amy@example.com","tags":[]}`

func TestDecode_RejectsCorruptData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `students`},
		{"unknown field", `{"students":[],"moduleClasses":[],"version":2}`},
		{"trailing data", `{"students":[],"moduleClasses":[]} {}`},
		{"invalid uuid", `{"students":[{"uuid":"x","name":"Amy","phone":"111","email":"a@b.c"}]}`},
		{"invalid phone", `{"students":[{"uuid":"6f1c1a52-3d5c-4f3e-9a53-1b7b2a9e0a01","name":"Amy","phone":"1","email":"a@b.c"}]}`},
		{"duplicate student", `{"students":[` + validStudent + `,` + validStudent + `]}`},
		{"duplicate student id", `{"students":[` + validStudent + `,` +
			`{"uuid":"6f1c1a52-3d5c-4f3e-9a53-1b7b2a9e0a01","name":"Bo Chan","phone":"22222222","email":"bo@example.com","tags":[]}]}`},
		{"unknown member", `{"students":[],"moduleClasses":[{"name":"CS2103T","studentUuids":["6f1c1a52-3d5c-4f3e-9a53-1b7b2a9e0a01"],"lessons":[]}]}`},
		{"record count", `{"students":[],"moduleClasses":[{"name":"CS2103T","studentUuids":[],"lessons":[
			{"startTime":"08:00","endTime":"10:00","day":"MONDAY","numberOfOccurrences":2,"venue":"COM1","attendanceRecordList":[{}]}]}]}`},
		{"score out of range", `{"students":[` + validStudent + `],"moduleClasses":[{"name":"CS2103T","studentUuids":[],"lessons":[
			{"startTime":"08:00","endTime":"10:00","day":"MONDAY","numberOfOccurrences":1,"venue":"COM1",
			 "attendanceRecordList":[{"6f1c1a52-3d5c-4f3e-9a53-1b7b2a9e0a01":{"participationScore":101}}]}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrDataConversion)
			assert.True(t, shared.IsStorageCorrupted(err))
		})
	}
}

func TestDecode_ReportsFieldPath(t *testing.T) {
	_, err := Decode([]byte(`{"students":[` + validStudent + `,{"uuid":"6f1c1a52-3d5c-4f3e-9a53-1b7b2a9e0a02","name":"Bo","phone":"111","email":"nope"}]}`))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "students[1]: email"), err.Error())
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("a"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, Fingerprint([]byte("a")))
	assert.NotEqual(t, a, Fingerprint([]byte("b")))
}
