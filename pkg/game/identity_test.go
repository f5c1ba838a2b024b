package game

import "testing"

func TestPlayerIdentityNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   PlayerIdentity
		want PlayerIdentity
	}{
		{
			name: "empty falls back to guest",
			in:   PlayerIdentity{},
			want: PlayerIdentity{GroupID: "default", PlayerID: "guest", PlayerName: "Player"},
		},
		{
			name: "whitespace treated as missing",
			in:   PlayerIdentity{GroupID: "  ", PlayerID: "\t", PlayerName: " "},
			want: PlayerIdentity{GroupID: "default", PlayerID: "guest", PlayerName: "Player"},
		},
		{
			name: "complete identity kept",
			in:   PlayerIdentity{GroupID: "-100123", PlayerID: "42", PlayerName: "Darian"},
			want: PlayerIdentity{GroupID: "-100123", PlayerID: "42", PlayerName: "Darian"},
		},
		{
			name: "missing group only",
			in:   PlayerIdentity{PlayerID: "42"},
			want: PlayerIdentity{GroupID: "default", PlayerID: "42", PlayerName: "Player"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	if !(PlayerIdentity{}).IsGuest() {
		t.Error("empty identity should be guest")
	}
}
