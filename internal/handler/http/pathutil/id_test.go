package pathutil

import (
	"errors"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantID  int64
		wantErr error
	}{
		{name: "valid", raw: "123", wantID: 123},
		{name: "max int64", raw: "9223372036854775807", wantID: 9223372036854775807},
		{name: "not a number", raw: "abc", wantErr: ErrInvalidID},
		{name: "zero", raw: "0", wantErr: ErrInvalidID},
		{name: "negative", raw: "-1", wantErr: ErrInvalidID},
		{name: "empty", raw: "", wantErr: ErrInvalidID},
		{name: "overflow", raw: "9223372036854775808", wantErr: ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotErr := ParseID(tt.raw)
			if gotID != tt.wantID {
				t.Errorf("ParseID() id = %v, want %v", gotID, tt.wantID)
			}
			if !errors.Is(gotErr, tt.wantErr) {
				t.Errorf("ParseID() err = %v, want %v", gotErr, tt.wantErr)
			}
		})
	}
}
