package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	type args struct {
		userID    string
		address   string
		publicKey string
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name: "sanity",
			args: args{
				userID:    "6c9f6a9a-6f34-4f25-9f3f-0c6e9a2e61aa",
				address:   "0x9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
				publicKey: "0x2e5c3a1f8b4d9e7a6c0f1b2d3e4a5b6c7d8e9f0a1b2c3d4e5f6a7b8c9d0e1f2a",
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				got, ttl, err := GenerateJWT(tt.args.userID, tt.args.address, tt.args.publicKey, 2*time.Hour)
				if (err != nil) != tt.wantErr {
					t.Errorf("GenerateJWT() error = %v, wantErr %v", err, tt.wantErr)
					return
				}
				if ttl != 7200 {
					t.Errorf("GenerateJWT() ttl = %d, want 7200", ttl)
				}

				claims, err := VerifyJWT(got)
				if err != nil {
					t.Errorf("VerifyJWT() error = %v", err)
					return
				}
				if claims["user_id"] != tt.args.userID {
					t.Errorf("VerifyJWT() user_id = %s, want %s", claims["user_id"], tt.args.userID)
				}
				if claims["address"] != tt.args.address {
					t.Errorf("VerifyJWT() address = %s, want %s", claims["address"], tt.args.address)
				}
			},
		)
	}
}

func TestVerifyJWT_Expired(t *testing.T) {
	got, _, err := GenerateJWT("user", "0xabc", "0xdef", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	if _, err = VerifyJWT(got); err == nil {
		t.Error("VerifyJWT() accepted an expired token")
	}
}

func TestVerifyJWT_Garbage(t *testing.T) {
	if _, err := VerifyJWT("not-a-token"); err == nil {
		t.Error("VerifyJWT() accepted garbage")
	}
}
