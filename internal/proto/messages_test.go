package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestCredentials(t *testing.T) {
	s := Credentials{Email: "a@b.c", Password: "pw"}.Struct()
	assert.Equal(t, "a@b.c", s.Fields["email"].GetStringValue())
	assert.Equal(t, Credentials{Email: "a@b.c", Password: "pw"}, CredentialsFrom(s))
	assert.Equal(t, Credentials{}, CredentialsFrom(nil))
}

func TestSession(t *testing.T) {
	in := Session{UserID: "u1", Email: "a@b.c", AccessToken: "at", RefreshToken: "rt"}
	assert.Equal(t, in, SessionFrom(in.Struct()))
}

func TestDocument(t *testing.T) {
	in := Document{
		Path: "users/u1/workouts/2024-06-10",
		Data: []byte(`{"exercises":[{"id":"e1","name":"Squat","sets":[{"reps":"5","weight":"100"}]}],"timestamp":"2024-06-10T18:00:00Z"}`),
	}
	s, err := in.Struct()
	require.NoError(t, err)

	out, err := DocumentFrom(s)
	require.NoError(t, err)
	assert.Equal(t, in.Path, out.Path)
	assert.JSONEq(t, string(in.Data), string(out.Data))
}

func TestDocument_NotAnObject(t *testing.T) {
	_, err := Document{Path: "p", Data: []byte(`[1,2]`)}.Struct()
	assert.Error(t, err)
}

func TestDocumentFrom_Malformed(t *testing.T) {
	_, err := DocumentFrom(&structpb.Struct{})
	assert.ErrorIs(t, err, ErrMalformedMessage)

	_, err = DocumentFrom(stringStruct(fieldPath, "users/u1/workouts/x", fieldData, "not a struct"))
	assert.ErrorIs(t, err, ErrMalformedMessage)
}

func TestDocumentList(t *testing.T) {
	list := DocumentList{
		{Path: "users/u1/workouts/2024-06-10", Data: []byte(`{"exercises":[]}`)},
		{Path: "users/u1/workouts/2024-06-11", Data: []byte(`{"exercises":[]}`)},
	}
	s, bad := list.Struct()
	require.Empty(t, bad)

	s.Fields[fieldDocuments].GetListValue().Values = append(
		s.Fields[fieldDocuments].GetListValue().Values,
		structpb.NewStringValue("garbage"),
	)

	got, skipped := DocumentListFrom(s)
	assert.Equal(t, 1, skipped)
	require.Len(t, got, 2)
	assert.Equal(t, "users/u1/workouts/2024-06-11", got[1].Path)

	empty, skipped := DocumentListFrom(&structpb.Struct{})
	assert.Empty(t, empty)
	assert.Zero(t, skipped)
}

func TestDocumentList_SkipsUnencodableDocuments(t *testing.T) {
	list := DocumentList{
		{Path: "users/u/workouts/2024-06-10", Data: []byte(`{"exercises":[]}`)},
		{Path: "users/u/workouts/2024-06-11", Data: []byte(`not json`)},
	}

	s, skipped := list.Struct()
	require.Len(t, skipped, 1)
	assert.ErrorContains(t, skipped[0], "users/u/workouts/2024-06-11")

	got, n := DocumentListFrom(s)
	assert.Zero(t, n)
	require.Len(t, got, 1)
	assert.Equal(t, "users/u/workouts/2024-06-10", got[0].Path)
}

func TestListRequest(t *testing.T) {
	r := ListRequest{Collection: "users/u1/workouts"}
	assert.Equal(t, r, ListRequestFrom(r.Struct()))
	assert.Equal(t, RefreshRequest{RefreshToken: "x"}, RefreshRequestFrom(RefreshRequest{RefreshToken: "x"}.Struct()))
}
