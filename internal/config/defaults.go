package config

const (
	defaultMusicDir      = "~/music"
	defaultOutputFile    = "~/.local/share/medley/combined_playlist.wav"
	defaultPlaylistFile  = "~/.local/share/medley/ffmpeg_playlist.txt"
	defaultDigestFile    = "~/.local/share/medley/playlist_checksum.txt"
	defaultStateDir      = "~/.local/share/medley"
	defaultLogDir        = "~/.local/share/medley/logs"
	defaultExtension     = ".wav"
	defaultAlgorithm     = "md5"
	defaultChunkSize     = 4096
	defaultConcatTimeout = 3600
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MusicDir:     defaultMusicDir,
			OutputFile:   defaultOutputFile,
			PlaylistFile: defaultPlaylistFile,
			DigestFile:   defaultDigestFile,
			StateDir:     defaultStateDir,
			LogDir:       defaultLogDir,
		},
		Scan: Scan{
			Extension: defaultExtension,
		},
		Digest: Digest{
			Algorithm: defaultAlgorithm,
			ChunkSize: defaultChunkSize,
		},
		Concat: Concat{
			TimeoutSeconds: defaultConcatTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
