package socket

import "testing"

func TestDecodeRoom(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "table id", in: `{"table_id":"abc"}`, want: "abc"},
		{name: "missing id", in: `{"game_id":"abc"}`, wantErr: true},
		{name: "not json", in: `abc`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeRoom(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Fatalf("decodeRoom(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}
