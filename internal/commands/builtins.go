package commands

func (h *Handler) builtins() []*Command {
	world := InputSpec{Name: "world", Type: InputTypeString, Required: true}
	target := InputSpec{Name: "player", Type: InputTypeString, Required: true}

	return []*Command{
		{
			Name: "create",
			Inputs: []InputSpec{
				world,
				{Name: "visibility", Type: InputTypeString},
				{Name: "type", Type: InputTypeString},
			},
			Run: h.create,
		},
		{Name: "delete", Permission: "buildsystem.delete", WorldInput: "world", Inputs: []InputSpec{world}, Run: h.delete},
		{Name: "info", Permission: "buildsystem.info", WorldInput: "world", Inputs: []InputSpec{world}, Run: h.info},
		{Name: "builders", Permission: "buildsystem.builders", WorldInput: "world", Inputs: []InputSpec{world}, Run: h.builders},
		{Name: "addbuilder", Permission: "buildsystem.addbuilder", WorldInput: "world", Inputs: []InputSpec{world, target}, Run: h.addBuilder},
		{Name: "removebuilder", Permission: "buildsystem.removebuilder", WorldInput: "world", Inputs: []InputSpec{world, target}, Run: h.removeBuilder},
		{
			Name:       "setstatus",
			Permission: "buildsystem.setstatus",
			WorldInput: "world",
			Inputs:     []InputSpec{world, {Name: "status", Type: InputTypeString, Required: true}},
			Run:        h.setStatus,
		},
		{
			Name:       "setpermission",
			Permission: "buildsystem.setpermission",
			WorldInput: "world",
			Inputs:     []InputSpec{world, {Name: "permission", Type: InputTypeString}},
			Run:        h.setPermission,
		},
		{
			Name:       "setproject",
			Permission: "buildsystem.setproject",
			WorldInput: "world",
			Inputs:     []InputSpec{world, {Name: "project", Type: InputTypeString, Rest: true}},
			Run:        h.setProject,
		},
		{Name: "setcreator", Permission: "buildsystem.setcreator", WorldInput: "world", Inputs: []InputSpec{world, target}, Run: h.setCreator},
		{Name: "tp", Permission: "buildsystem.worldtp", WorldInput: "world", Inputs: []InputSpec{world}, Run: h.teleport},

		{Name: "setspawn", Permission: "buildsystem.setspawn", Run: h.setSpawn},
		{Name: "removespawn", Permission: "buildsystem.removespawn", Run: h.removeSpawn},
		{Name: "spawn", Run: h.spawn},

		{
			Name: "worlds",
			Inputs: []InputSpec{
				{Name: "view", Type: InputTypeString},
				{Name: "page", Type: InputTypeString},
			},
			Run: h.worlds,
		},
		{Name: "sort", Inputs: []InputSpec{{Name: "direction", Type: InputTypeString}}, Run: h.sort},
		{Name: "speed", Permission: "buildsystem.speed", Inputs: []InputSpec{{Name: "level", Type: InputTypeNumber, Required: true}}, Run: h.speed},
		{Name: "build", Permission: "buildsystem.buildmode", Run: h.build},
	}
}
