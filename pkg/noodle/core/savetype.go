package core

// SaveType is a selectable cartridge save size.
type SaveType struct {
	Name string
	Size int
}

var NDSSaveTypes = []SaveType{
	{"None", 0x000000},
	{"EEPROM 0.5KB", 0x000200},
	{"EEPROM 8KB", 0x002000},
	{"EEPROM 64KB", 0x010000},
	{"EEPROM 128KB", 0x020000},
	{"FRAM 32KB", 0x008000},
	{"FLASH 256KB", 0x040000},
	{"FLASH 512KB", 0x080000},
	{"FLASH 1024KB", 0x100000},
	{"FLASH 8192KB", 0x800000},
}

var GBASaveTypes = []SaveType{
	{"None", 0x00000},
	{"EEPROM 0.5KB", 0x00200},
	{"EEPROM 8KB", 0x02000},
	{"SRAM 32KB", 0x08000},
	{"FLASH 64KB", 0x10000},
	{"FLASH 128KB", 0x20000},
}

// SaveTypes returns the table for the running mode.
func SaveTypes(gbaMode bool) []SaveType {
	if gbaMode {
		return GBASaveTypes
	}
	return NDSSaveTypes
}
