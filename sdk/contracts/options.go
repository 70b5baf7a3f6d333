package contracts

// MIDICommand represents the types of MIDI commands for event filtering.
type MIDICommand byte

const (
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
	// ControlChange is the MIDI command for a Control Change event (0xB0).
	ControlChange MIDICommand = 0xB0
)

// MIDIEventFilter allows users to specify which MIDI commands to capture.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to filter.
}

// Allows reports whether a status byte passes the filter. The channel nibble is ignored.
// A nil filter lets everything through.
func (f *MIDIEventFilter) Allows(status byte) bool {
	if f == nil {
		return true
	}
	for _, command := range f.Commands {
		if status&0xF0 == byte(command) {
			return true
		}
	}
	return false
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// KeyboardConfig holds configuration for the virtual keyboard.
type KeyboardConfig struct {
	Name       string // Device name announced to the OS where the platform supports one.
	DevicePath string // uinput control node on Linux.
}

// ClientOptions defines the configuration options for the MIDI client, the virtual keyboard and the translator.
type ClientOptions struct {
	Logger          Logger           // Logger for logging events and errors.
	LogLevel        LogLevel         // Level of logging to use.
	LogLevelSet     bool             // LogLevel was given explicitly and overrides a supplied logger's level.
	LogFilePath     string           // File path for logging if file logging is enabled.
	MIDIEventFilter *MIDIEventFilter // Optional filter for MIDI events to capture.
	CoreMIDIConfig  *CoreMIDIConfig  // Configuration specific to CoreMIDI.
	KeyboardConfig  *KeyboardConfig  // Configuration for the virtual keyboard.
	OutputMethod    MethodKind       // Output method the translator starts with.
	OutputDisabled  bool             // Start with output switched off.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
		opts.LogLevelSet = true
	}
}

// WithLogFile directs log output to the given file.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithMIDIEventFilter sets the MIDI event filter for the MIDI client.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ClientOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the MIDI client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithKeyboardConfig sets the virtual keyboard configuration.
func WithKeyboardConfig(config KeyboardConfig) Option {
	return func(opts *ClientOptions) {
		opts.KeyboardConfig = &config
	}
}

// WithOutputMethod selects the output method the translator starts with.
func WithOutputMethod(kind MethodKind) Option {
	return func(opts *ClientOptions) {
		opts.OutputMethod = kind
	}
}

// WithOutputEnabled switches key output on or off at startup.
func WithOutputEnabled(enabled bool) Option {
	return func(opts *ClientOptions) {
		opts.OutputDisabled = !enabled
	}
}
