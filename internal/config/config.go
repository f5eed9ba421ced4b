package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	Monitoring    MonitoringConfig   `mapstructure:"monitoring"`
	Classify      ClassifyConfig     `mapstructure:"classify"`
	Resolver      ResolverConfig     `mapstructure:"resolver"`
	Safety        SafetyConfig       `mapstructure:"safety"`
	Server        ServerConfig       `mapstructure:"server"`
	Notifications NotificationConfig `mapstructure:"notifications"`
}

type MonitoringConfig struct {
	ScanInterval time.Duration `mapstructure:"scan_interval"`
}

type ClassifyConfig struct {
	SystemProcesses   []string `mapstructure:"system_processes"`
	PrivilegedMarkers []string `mapstructure:"privileged_markers"`
}

type ResolverConfig struct {
	Controllers []string `mapstructure:"controllers"`
	Wrappers    []string `mapstructure:"wrappers"`
	MaxDepth    int      `mapstructure:"max_depth"`
}

type SafetyConfig struct {
	NeverTerminate []string `mapstructure:"never_terminate"`
}

type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

type NotificationConfig struct {
	LogFile      string `mapstructure:"log_file"`
	AuditFile    string `mapstructure:"audit_file"`
	Verbose      bool   `mapstructure:"verbose"`
	ColorEnabled bool   `mapstructure:"color_enabled"`
}

func setDefaults() {
	viper.SetDefault("monitoring.scan_interval", "2s")

	viper.SetDefault("classify.system_processes", []string{
		// Windows infrastructure
		"system", "svchost.exe", "services.exe", "lsass.exe", "csrss.exe",
		"wininit.exe", "winlogon.exe", "smss.exe", "dwm.exe", "explorer.exe",
		"spoolsv.exe", "searchindexer.exe", "msdtc.exe", "fontdrvhost.exe",
		"registry", "memory compression", "ntoskrnl.exe", "audiodg.exe",
		"conhost.exe", "dllhost.exe", "sihost.exe", "taskhostw.exe",
		"runtimebroker.exe", "shellexperiencehost.exe", "startmenuexperiencehost.exe",
		"ctfmon.exe", "securityhealthservice.exe", "sgrmbroker.exe",
		"microsoftedgeupdate.exe", "wmiprvse.exe", "wudfhost.exe",
		// Unix daemons
		"systemd", "init", "systemd-resolved", "rsyslogd", "journald",
		"dbus-daemon", "cupsd", "avahi-daemon", "sshd", "networkmanager",
	})
	viper.SetDefault("classify.privileged_markers", []string{
		"system", "local service", "network service", "root",
	})

	viper.SetDefault("resolver.controllers", []string{
		"node", "node.exe", "npm", "npm.cmd",
		"python", "python.exe", "python3", "pythonw.exe",
		"php", "php.exe", "java", "java.exe", "javaw.exe",
		"dotnet", "dotnet.exe", "ruby", "ruby.exe", "deno", "bun",
	})
	viper.SetDefault("resolver.wrappers", []string{
		"cmd", "cmd.exe", "conhost.exe", "powershell.exe", "pwsh", "pwsh.exe",
		"sh", "bash", "zsh", "fish", "dash", "ksh", "login",
	})
	viper.SetDefault("resolver.max_depth", 32)

	viper.SetDefault("safety.never_terminate", []string{
		"system", "wininit.exe", "winlogon.exe", "csrss.exe", "lsass.exe",
		"smss.exe", "services.exe", "systemd", "init", "kthreadd", "launchd",
	})

	viper.SetDefault("server.listen", "127.0.0.1:5000")

	viper.SetDefault("notifications.log_file", "")
	viper.SetDefault("notifications.audit_file", "")
	viper.SetDefault("notifications.verbose", false)
	viper.SetDefault("notifications.color_enabled", true)
}

// Load reads configuration from file, environment, and defaults.
func Load(configPath string) (*Config, error) {
	setDefaults()

	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("PORTMANAGER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		// Search in current dir, home dir, /etc
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".port-manager"))
		}
		viper.AddConfigPath("/etc/port-manager")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK — we use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Global holds the current loaded configuration.
var Global *Config
