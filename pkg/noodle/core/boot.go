package core

import (
	"errors"
	"fmt"
	"os"
)

// minFirmwareSize is the smallest firmware image that can boot to the menu.
const minFirmwareSize = 0x40000

// ROMSet is everything a core needs to boot.
type ROMSet struct {
	NDS        string
	GBA        string
	BIOS9      string
	BIOS7      string
	Firmware   string
	GBABIOS    string
	DirectBoot bool
}

// FileBooter checks that the ROMs and system files exist before handing them
// to New. A nil New boots a NullCore.
type FileBooter struct {
	BIOS9      string
	BIOS7      string
	Firmware   string
	GBABIOS    string
	DirectBoot bool
	New        func(ROMSet) (Core, error)
}

func (b FileBooter) Boot(ndsPath, gbaPath string) (Core, error) {
	if ndsPath == "" && gbaPath == "" {
		return nil, &BootError{Kind: BootErrorROM, Err: errors.New("no ROM selected")}
	}

	for _, rom := range []string{ndsPath, gbaPath} {
		if rom == "" {
			continue
		}
		if err := checkReadable(rom); err != nil {
			return nil, &BootError{Kind: BootErrorROM, Path: rom, Err: err}
		}
	}

	var bios []string
	if ndsPath != "" {
		bios = append(bios, b.BIOS9, b.BIOS7)
	}
	if gbaPath != "" {
		bios = append(bios, b.GBABIOS)
	}
	for _, path := range bios {
		if err := checkReadable(path); err != nil {
			return nil, &BootError{Kind: BootErrorBIOS, Path: path, Err: err}
		}
	}

	if ndsPath != "" && !b.DirectBoot {
		if err := checkFirmware(b.Firmware); err != nil {
			return nil, &BootError{Kind: BootErrorFirmware, Path: b.Firmware, Err: err}
		}
	}

	set := ROMSet{
		NDS:        ndsPath,
		GBA:        gbaPath,
		BIOS9:      b.BIOS9,
		BIOS7:      b.BIOS7,
		Firmware:   b.Firmware,
		GBABIOS:    b.GBABIOS,
		DirectBoot: b.DirectBoot,
	}
	if b.New == nil {
		return NewNullCore(set)
	}
	return b.New(set)
}

func checkReadable(path string) error {
	if path == "" {
		return errors.New("path not set")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func checkFirmware(path string) error {
	if err := checkReadable(path); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() < minFirmwareSize {
		return fmt.Errorf("firmware is %d bytes, not bootable", info.Size())
	}
	return nil
}
