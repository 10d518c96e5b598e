package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseObjectURL(t *testing.T) {
	cases := []struct {
		in   string
		want ObjectRef
	}{
		{"s3://exports/employees.json", ObjectRef{"exports", "employees.json"}},
		{"s3://exports/sim/app/", ObjectRef{"exports", "sim/app/employees.json"}},
		{"s3://exports", ObjectRef{"exports", "employees.json"}},
		{"s3://exports/", ObjectRef{"exports", "employees.json"}},
		{"s3://exports//deep/x.json", ObjectRef{"exports", "deep/x.json"}},
	}
	for _, c := range cases {
		got, err := ParseObjectURL(c.in, "employees.json")
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, got, c.in)
	}

	_, err := ParseObjectURL("s3:///key", "employees.json")
	require.Error(t, err)
	_, err = ParseObjectURL("/tmp/exported", "employees.json")
	require.Error(t, err)
}

func TestObjectRefString(t *testing.T) {
	require.Equal(t, "s3://b/k/employees.json", ObjectRef{Bucket: "b", Key: "k/employees.json"}.String())
}

func TestNewObjectStoreRequiresEndpoint(t *testing.T) {
	_, err := NewObjectStore(nil)
	require.Error(t, err)
	_, err = NewObjectStore(&MinIOConfig{})
	require.Error(t, err)

	s, err := NewObjectStore(&MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	require.NoError(t, err)
	require.NotNil(t, s)
}
