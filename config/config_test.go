package config

import (
	"fmt"
	"testing"

	"github.com/spf13/viper"
)

func Test_loadViperConfig(t *testing.T) {
	type args struct {
		filePath string
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name:    "sanity",
			args:    struct{ filePath string }{filePath: "/etc/aptchat/config.yaml"},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := loadViperConfig(tt.args.filePath); (err != nil) != tt.wantErr {
				t.Skipf("loadViperConfig() error = %v, config file not present", err)
			}
			fmt.Println(viper.Sub("server").AllSettings())
		})
	}
}
