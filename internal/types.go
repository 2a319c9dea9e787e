package internal

import "time"

type conf struct {
	LMS        confLMS    `yaml:"lms"`
	ArtNet     confArtNet `yaml:"artnet"`
	TargetFPS  int        `yaml:"targetFPS"`
	RetryDelay int        `yaml:"retryDelaySec"`
	// optional socket timeouts, whole seconds
	DialTimeout int  `yaml:"dialTimeoutSec"`
	IOTimeout   int  `yaml:"ioTimeoutSec"`
	Debug       bool `yaml:"debug"`
}

type confLMS struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Player   string `yaml:"player"`
}

type confArtNet struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SessionConfig is the resolved, validated configuration. It is never
// mutated once the bridge starts.
type SessionConfig struct {
	LMSHost  string
	LMSPort  int
	Username string
	Password string
	Player   string

	ArtNetHost string
	ArtNetPort int

	TargetFPS   int
	RetryDelay  time.Duration
	DialTimeout time.Duration
	IOTimeout   time.Duration
	Debug       bool
}

// Mode is the player's transport state as far as the bridge cares.
type Mode int

const (
	ModeOther Mode = iota
	ModePlaying
)

func (m Mode) String() string {
	if m == ModePlaying {
		return "play"
	}
	return "other"
}

// PlaybackState is one poll's view of the player.
type PlaybackState struct {
	Mode      Mode
	Position  float64 // seconds into the current track
	ValidAsOf time.Time
}

// Timecode is SMPTE hours:minutes:seconds:frames at 30 fps.
type Timecode struct {
	Hours   uint8
	Minutes uint8
	Seconds uint8
	Frames  uint8
}
