package proto

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

var ErrMalformedMessage = errors.New("malformed message")

const (
	fieldEmail        = "email"
	fieldPassword     = "password"
	fieldUserID       = "user_id"
	fieldAccessToken  = "access_token"
	fieldRefreshToken = "refresh_token"
	fieldPath         = "path"
	fieldData         = "data"
	fieldCollection   = "collection"
	fieldDocuments    = "documents"
)

func str(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	return s.GetFields()[key].GetStringValue()
}

func stringStruct(kv ...string) *structpb.Struct {
	out := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		out.Fields[kv[i]] = structpb.NewStringValue(kv[i+1])
	}
	return out
}

// Credentials is the SignUp and SignIn request.
type Credentials struct {
	Email    string
	Password string
}

func (c Credentials) Struct() *structpb.Struct {
	return stringStruct(fieldEmail, c.Email, fieldPassword, c.Password)
}

func CredentialsFrom(s *structpb.Struct) Credentials {
	return Credentials{Email: str(s, fieldEmail), Password: str(s, fieldPassword)}
}

// Session is the SignIn and Refresh response. SignUp answers with UserID
// and Email only.
type Session struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
}

func (s Session) Struct() *structpb.Struct {
	return stringStruct(
		fieldUserID, s.UserID,
		fieldEmail, s.Email,
		fieldAccessToken, s.AccessToken,
		fieldRefreshToken, s.RefreshToken,
	)
}

func SessionFrom(s *structpb.Struct) Session {
	return Session{
		UserID:       str(s, fieldUserID),
		Email:        str(s, fieldEmail),
		AccessToken:  str(s, fieldAccessToken),
		RefreshToken: str(s, fieldRefreshToken),
	}
}

// RefreshRequest carries the refresh token to rotate.
type RefreshRequest struct {
	RefreshToken string
}

func (r RefreshRequest) Struct() *structpb.Struct {
	return stringStruct(fieldRefreshToken, r.RefreshToken)
}

func RefreshRequestFrom(s *structpb.Struct) RefreshRequest {
	return RefreshRequest{RefreshToken: str(s, fieldRefreshToken)}
}

// Document is a stored JSON object addressed by a slash-separated path.
type Document struct {
	Path string
	Data []byte
}

func (d Document) Struct() (*structpb.Struct, error) {
	data := &structpb.Struct{}
	if err := protojson.Unmarshal(d.Data, data); err != nil {
		return nil, fmt.Errorf("document %s: %w", d.Path, err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldPath: structpb.NewStringValue(d.Path),
		fieldData: structpb.NewStructValue(data),
	}}, nil
}

func DocumentFrom(s *structpb.Struct) (Document, error) {
	path := str(s, fieldPath)
	data := s.GetFields()[fieldData].GetStructValue()
	if path == "" || data == nil {
		return Document{}, ErrMalformedMessage
	}
	raw, err := protojson.Marshal(data)
	if err != nil {
		return Document{}, fmt.Errorf("document %s: %w", path, err)
	}
	return Document{Path: path, Data: raw}, nil
}

// ListRequest names the collection to list.
type ListRequest struct {
	Collection string
}

func (r ListRequest) Struct() *structpb.Struct {
	return stringStruct(fieldCollection, r.Collection)
}

func ListRequestFrom(s *structpb.Struct) ListRequest {
	return ListRequest{Collection: str(s, fieldCollection)}
}

// DocumentList is the ListDocuments response.
type DocumentList []Document

// Struct encodes the list. Documents whose data is not a JSON object are
// left out and reported in skipped, so one bad document cannot hide the rest.
func (l DocumentList) Struct() (s *structpb.Struct, skipped []error) {
	values := make([]*structpb.Value, 0, len(l))
	for _, d := range l {
		ds, err := d.Struct()
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		values = append(values, structpb.NewStructValue(ds))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldDocuments: structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}, skipped
}

// DocumentListFrom decodes a ListDocuments response. Entries that are not
// well-formed documents are dropped and counted in skipped.
func DocumentListFrom(s *structpb.Struct) (docs DocumentList, skipped int) {
	for _, v := range s.GetFields()[fieldDocuments].GetListValue().GetValues() {
		d, err := DocumentFrom(v.GetStructValue())
		if err != nil {
			skipped++
			continue
		}
		docs = append(docs, d)
	}
	return docs, skipped
}
