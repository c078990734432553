package usagepages

// Page codes, HID Usage Tables 1.12.
const (
	Undefined             uint16 = 0x00
	GenericDesktop        uint16 = 0x01
	SimulationControls    uint16 = 0x02
	VRControls            uint16 = 0x03
	SportControls         uint16 = 0x04
	GameControls          uint16 = 0x05
	GenericDeviceControls uint16 = 0x06
	KeyboardKeypad        uint16 = 0x07
	LED                   uint16 = 0x08
	Button                uint16 = 0x09
	Ordinal               uint16 = 0x0A
	Telephony             uint16 = 0x0B
	Consumer              uint16 = 0x0C
	Digitizer             uint16 = 0x0D
	AlphanumericDisplay   uint16 = 0x14
	BarcodeScanner        uint16 = 0x8C
	VendorDefinedStart    uint16 = 0xFF00
	VendorDefinedEnd      uint16 = 0xFFFF
)

func usageMap(usages ...UsageInfo) map[string]UsageInfo {
	m := make(map[string]UsageInfo, len(usages))
	for _, u := range usages {
		m[u.Name] = u
	}
	return m
}

var pages = map[uint16]PageInfo{
	Undefined: {
		Code: Undefined,
		Name: "UNDEFINED",
	},
	GenericDesktop: {
		Code: GenericDesktop,
		Name: "GENERIC_DESKTOP",
		usages: usageMap(
			UsageInfo{ID: 0x01, Name: "POINTER"},
			UsageInfo{ID: 0x02, Name: "MOUSE"},
			UsageInfo{ID: 0x04, Name: "JOYSTICK"},
			UsageInfo{ID: 0x05, Name: "GAMEPAD"},
			UsageInfo{ID: 0x06, Name: "KEYBOARD"},
			UsageInfo{ID: 0x07, Name: "KEYPAD"},
			UsageInfo{ID: 0x08, Name: "MULTI_AXIS_CONTROLLER"},
			UsageInfo{ID: 0x30, Name: "X"},
			UsageInfo{ID: 0x31, Name: "Y"},
			UsageInfo{ID: 0x32, Name: "Z"},
			UsageInfo{ID: 0x33, Name: "RX"},
			UsageInfo{ID: 0x34, Name: "RY"},
			UsageInfo{ID: 0x35, Name: "RZ"},
			UsageInfo{ID: 0x36, Name: "SLIDER"},
			UsageInfo{ID: 0x37, Name: "DIAL"},
			UsageInfo{ID: 0x38, Name: "WHEEL"},
			UsageInfo{ID: 0x39, Name: "HAT_SWITCH"},
			UsageInfo{ID: 0x80, Name: "SYSTEM_CONTROL"},
		),
	},
	SimulationControls: {
		Code: SimulationControls,
		Name: "SIMULATION_CONTROLS",
		usages: usageMap(
			UsageInfo{ID: 0xBA, Name: "RUDDER"},
			UsageInfo{ID: 0xBB, Name: "THROTTLE"},
			UsageInfo{ID: 0xC4, Name: "ACCELERATOR"},
			UsageInfo{ID: 0xC5, Name: "BRAKE"},
			UsageInfo{ID: 0xC8, Name: "STEERING"},
		),
	},
	VRControls: {
		Code: VRControls,
		Name: "VR_CONTROLS",
	},
	SportControls: {
		Code: SportControls,
		Name: "SPORT_CONTROLS",
	},
	GameControls: {
		Code: GameControls,
		Name: "GAME_CONTROLS",
	},
	GenericDeviceControls: {
		Code: GenericDeviceControls,
		Name: "GENERIC_DEVICE_CONTROLS",
	},
	KeyboardKeypad: {
		Code: KeyboardKeypad,
		Name: "KEYBOARD",
		usages: usageMap(
			UsageInfo{ID: 0x00, Name: "KEY_NONE"},
			UsageInfo{ID: 0x01, Name: "KEY_ERROR_ROLLOVER"},
			UsageInfo{ID: 0xE0, Name: "KEY_LEFT_CONTROL"},
			UsageInfo{ID: 0xE1, Name: "KEY_LEFT_SHIFT"},
			UsageInfo{ID: 0xE2, Name: "KEY_LEFT_ALT"},
			UsageInfo{ID: 0xE3, Name: "KEY_LEFT_GUI"},
			UsageInfo{ID: 0xE4, Name: "KEY_RIGHT_CONTROL"},
			UsageInfo{ID: 0xE5, Name: "KEY_RIGHT_SHIFT"},
			UsageInfo{ID: 0xE6, Name: "KEY_RIGHT_ALT"},
			UsageInfo{ID: 0xE7, Name: "KEY_RIGHT_GUI"},
		),
	},
	LED: {
		Code: LED,
		Name: "LEDS",
		usages: usageMap(
			UsageInfo{ID: 0x01, Name: "NUM_LOCK"},
			UsageInfo{ID: 0x02, Name: "CAPS_LOCK"},
			UsageInfo{ID: 0x03, Name: "SCROLL_LOCK"},
			UsageInfo{ID: 0x04, Name: "COMPOSE"},
			UsageInfo{ID: 0x05, Name: "KANA"},
			UsageInfo{ID: 0x06, Name: "POWER"},
			UsageInfo{ID: 0x07, Name: "SHIFT"},
			UsageInfo{ID: 0x09, Name: "MUTE"},
			UsageInfo{ID: 0x18, Name: "RING"},
		),
	},
	Button: {
		Code: Button,
		Name: "BUTTON",
		usages: usageMap(
			UsageInfo{ID: 0x00, Name: "BUTTON_NONE"},
			UsageInfo{ID: 0x01, Name: "BUTTON_1"},
			UsageInfo{ID: 0x02, Name: "BUTTON_2"},
			UsageInfo{ID: 0x03, Name: "BUTTON_3"},
			UsageInfo{ID: 0x04, Name: "BUTTON_4"},
			UsageInfo{ID: 0x05, Name: "BUTTON_5"},
			UsageInfo{ID: 0x06, Name: "BUTTON_6"},
			UsageInfo{ID: 0x07, Name: "BUTTON_7"},
			UsageInfo{ID: 0x08, Name: "BUTTON_8"},
		),
	},
	Ordinal: {
		Code: Ordinal,
		Name: "ORDINAL",
	},
	Telephony: {
		Code: Telephony,
		Name: "TELEPHONY",
	},
	Consumer: {
		Code: Consumer,
		Name: "CONSUMER",
		usages: usageMap(
			UsageInfo{ID: 0x01, Name: "CONSUMER_CONTROL"},
			UsageInfo{ID: 0x02, Name: "NUMERIC_KEYPAD"},
			UsageInfo{ID: 0x03, Name: "PROGRAMMABLE_BUTTONS"},
			UsageInfo{ID: 0x04, Name: "MICROPHONE"},
			UsageInfo{ID: 0x05, Name: "HEADPHONE"},
			UsageInfo{ID: 0x06, Name: "GRAPHIC_EQUALIZER"},
			UsageInfo{ID: 0xE0, Name: "VOLUME"},
			UsageInfo{ID: 0xE2, Name: "VOLUME_MUTE"},
			UsageInfo{ID: 0xE9, Name: "VOLUME_INCREMENT"},
			UsageInfo{ID: 0xEA, Name: "VOLUME_DECREMENT"},
			UsageInfo{ID: 0x238, Name: "AC_PAN"},
		),
	},
	Digitizer: {
		Code: Digitizer,
		Name: "DIGITIZER",
		usages: usageMap(
			UsageInfo{ID: 0x01, Name: "DIGITIZER"},
			UsageInfo{ID: 0x02, Name: "PEN"},
			UsageInfo{ID: 0x04, Name: "TOUCH_SCREEN"},
			UsageInfo{ID: 0x20, Name: "STYLUS"},
			UsageInfo{ID: 0x30, Name: "TIP_PRESSURE"},
			UsageInfo{ID: 0x32, Name: "IN_RANGE"},
			UsageInfo{ID: 0x42, Name: "TIP_SWITCH"},
		),
	},
	AlphanumericDisplay: {
		Code: AlphanumericDisplay,
		Name: "ALPHANUMERIC_DISPLAY",
		usages: usageMap(
			UsageInfo{ID: 0x25, Name: "CLEAR_DISPLAY"},
			UsageInfo{ID: 0x26, Name: "DISPLAY_ENABLE"},
			UsageInfo{ID: 0x2B, Name: "CHARACTER_REPORT"},
			UsageInfo{ID: 0x2C, Name: "CHARACTER_DATA"},
		),
	},
	BarcodeScanner: {
		Code: BarcodeScanner,
		Name: "BARCODE_SCANNER",
	},
	VendorDefinedStart: {
		Code: VendorDefinedStart,
		Name: "VENDOR_DEFINED_START",
	},
	VendorDefinedEnd: {
		Code: VendorDefinedEnd,
		Name: "VENDOR_DEFINED_END",
	},
}
