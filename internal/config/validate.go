package config

import (
	"errors"
	"fmt"
)

var supportedAlgorithms = map[string]struct{}{
	"md5":  {},
	"xxh3": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateDigest(); err != nil {
		return err
	}
	if err := c.validateConcat(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.MusicDir == "" {
		return errors.New("paths.music_dir must be set")
	}
	if c.Paths.OutputFile == "" {
		return errors.New("paths.output_file must be set")
	}
	if c.Paths.PlaylistFile == "" {
		return errors.New("paths.playlist_file must be set")
	}
	if c.Paths.DigestFile == "" {
		return errors.New("paths.digest_file must be set")
	}
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	if c.Paths.OutputFile == c.Paths.PlaylistFile {
		return errors.New("paths.output_file and paths.playlist_file must differ")
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.Extension == "" {
		return errors.New("scan.extension must be set")
	}
	return nil
}

func (c *Config) validateDigest() error {
	if _, ok := supportedAlgorithms[c.Digest.Algorithm]; !ok {
		return fmt.Errorf("digest.algorithm must be one of md5, xxh3 (got %q)", c.Digest.Algorithm)
	}
	if c.Digest.ChunkSize <= 0 {
		return errors.New("digest.chunk_size must be positive")
	}
	return nil
}

func (c *Config) validateConcat() error {
	if c.Concat.TimeoutSeconds <= 0 {
		return errors.New("concat.timeout_seconds must be positive (seconds)")
	}
	return nil
}
