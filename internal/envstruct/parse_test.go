package envstruct_test

import (
	"github.com/stretchr/testify/require"
	"github.com/swhawkins/LAPOK/internal/envstruct"
	"strings"
	"testing"
	"time"
)

func noEnv(_ string) (string, bool) { return "", false }

func TestPopulate(t *testing.T) {
	type args struct {
		v         any
		lookupEnv func(string) (string, bool)
	}
	tests := []struct {
		name    string
		args    args
		want    any
		wantErr error
	}{
		{
			name:    "nil",
			args:    args{v: nil, lookupEnv: noEnv},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name:    "not pointer",
			args:    args{v: struct{}{}, lookupEnv: noEnv},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name:    "empty struct",
			args:    args{v: &struct{}{}, lookupEnv: noEnv},
			want:    &struct{}{},
			wantErr: nil,
		},
		{
			name: "empty env",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Addr string `env:"LAP_ADDR"`
				}{},
				lookupEnv: noEnv,
			},
			want:    nil,
			wantErr: envstruct.ErrEnvNotSet,
		},
		{
			name: "picks correct env variable",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Addr       string `env:"LAP_ADDR"`
					SqliteURL  string `env:"LAP_SQLITE_URL"`
					OtherValue string
				}{},
				lookupEnv: func(s string) (string, bool) { return strings.ToLower(s), true },
			},
			want: &struct {
				Addr       string
				SqliteURL  string
				OtherValue string
			}{Addr: "lap_addr", SqliteURL: "lap_sqlite_url", OtherValue: ""},
			wantErr: nil,
		},
		{
			name: "handles default values of all supported types",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Theme   string        `env:"LAP_DEFAULT_THEME" envDefault:"light"`
					Pprof   bool          `env:"LAP_PPROF" envDefault:"true"`
					Workers int           `env:"LAP_WORKERS" envDefault:"4"`
					Delay   time.Duration `env:"LAP_REPORT_DELAY" envDefault:"2s"`
				}{},
				lookupEnv: noEnv,
			},
			want: &struct {
				Theme   string
				Pprof   bool
				Workers int
				Delay   time.Duration
			}{Theme: "light", Pprof: true, Workers: 4, Delay: 2 * time.Second},
			wantErr: nil,
		},
		{
			name: "environment overrides default",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Delay time.Duration `env:"LAP_REPORT_DELAY" envDefault:"2s"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "150ms", true },
			},
			want:    &struct{ Delay time.Duration }{Delay: 150 * time.Millisecond},
			wantErr: nil,
		},
		{
			name: "invalid bool",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Pprof bool `env:"LAP_PPROF"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "sometimes", true },
			},
			want:    nil,
			wantErr: envstruct.ErrParse,
		},
		{
			name: "unsupported type",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Ratio float64 `env:"LAP_RATIO" envDefault:"0.5"`
				}{},
				lookupEnv: noEnv,
			},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.args.v
			err := envstruct.Populate(v, tt.args.lookupEnv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.EqualValues(t, tt.want, v)
			}
		})
	}
}
