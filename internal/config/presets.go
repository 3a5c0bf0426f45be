package config

var Presets = map[string]map[string]*Config{
	"falling": {
		"brick": {
			System: "falling", Integrator: "semi", Dt: 0.1, MaxTime: 60.0,
			Body: BodyConfig{Drag: 0.0, Mass: 2.0, Gravity: DefaultGravity},
			Init: InitConfig{Height: 20.0},
		},
		"skydiver": {
			System: "falling", Integrator: "semi", Dt: 0.05, MaxTime: 300.0,
			Body: BodyConfig{Drag: 0.27, Mass: 80.0, Gravity: DefaultGravity},
			Init: InitConfig{Height: 2000.0},
		},
		"raindrop": {
			System: "falling", Integrator: "rk4", Dt: 0.01, MaxTime: 120.0,
			Body: BodyConfig{Drag: 1.2e-5, Mass: 6.5e-5, Gravity: DefaultGravity},
			Init: InitConfig{Height: 500.0},
		},
		"classroom": {
			System: "falling", Integrator: "semi", Dt: 0.1, MaxTime: 60.0,
			Body: BodyConfig{Drag: 0.035, Mass: 1.0, Gravity: DefaultGravity},
			Init: InitConfig{Height: 20.0},
		},
	},
	"projectile": {
		"lob": {
			System: "projectile", Integrator: "semi", Dt: 0.05, MaxTime: 60.0,
			Body: BodyConfig{Drag: 0.02, Mass: 1.0, Gravity: DefaultGravity},
			Init: InitConfig{Speed: 15.0, Angle: 60.0},
		},
		"flat": {
			System: "projectile", Integrator: "semi", Dt: 0.05, MaxTime: 30.0,
			Body: BodyConfig{Drag: 0.01, Mass: 1.0, Gravity: DefaultGravity},
			Init: InitConfig{Speed: 30.0, Angle: 10.0},
		},
		"mortar": {
			System: "projectile", Integrator: "rk4", Dt: 0.02, MaxTime: 120.0,
			Body: BodyConfig{Drag: 0.005, Mass: 4.0, Gravity: DefaultGravity},
			Init: InitConfig{Speed: 50.0, Angle: 80.0},
		},
	},
}

func GetPreset(system, preset string) *Config {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	cfg, ok := systemPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(system string) []string {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(systemPresets))
	for name := range systemPresets {
		names = append(names, name)
	}
	return names
}
