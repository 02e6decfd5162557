package addrtable

/* Built-in symbol tables. Offsets are ordered NTSC-U, NTSC-J, PAL. */

func LoadDefaults(t *Table) {
	loadPrime1(t)
	loadPrime1GCN(t)
	loadPrime2(t)
	loadPrime2GCN(t)
	loadPrime3(t)
	loadPrime3Standalone(t)
	loadMenu(t)
}

/* The visor, beam and camera blocks hang off the player object the same way in
 * every Prime 1 build */
func loadPrime1Player(t *Table, game Game) {
	t.RegisterDerived(game, "player_transform", "player", Offsets{0x34, 0x34, 0x34})
	t.RegisterDerived(game, "player_velocity", "player", Offsets{0x138, 0x138, 0x138})
	t.RegisterDerived(game, "morphball_state", "player", Offsets{0x2f4, 0x2f4, 0x2f4})
	t.RegisterDerived(game, "active_visor", "player_status", Offsets{0x1c, 0x1c, 0x1c})
	t.RegisterDerived(game, "beam_info", "player_gun", Offsets{0x310, 0x310, 0x310})
}

func loadPrime1(t *Table) {
	t.RegisterFixed(GamePrime1, "state_manager", Offsets{0x804e72e8, 0x804e72e8, 0x804e7468})
	t.RegisterFixed(GamePrime1, "camera_uid", Offsets{0x804c4a08, 0x804c4a08, 0x804c4b88})
	t.RegisterFixed(GamePrime1, "cursor", Offsets{0x80913c9c, 0x80913c9c, 0x80913df4})
	t.RegisterFixed(GamePrime1, "pause_screen", Offsets{0x804c6230, 0x804c6230, 0x804c63b0})

	t.RegisterDerived(GamePrime1, "player", "state_manager", Offsets{0x84c, 0x84c, 0x84c}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime1, "player_status", "state_manager", Offsets{0x8b8, 0x8b8, 0x8b8}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime1, "player_gun", "player", Offsets{0x490, 0x490, 0x490}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime1, "object_list", "state_manager", Offsets{0x810, 0x810, 0x810}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime1, "world", "state_manager", Offsets{0x850, 0x850, 0x850}, Offsets{0, 0, 0})
	loadPrime1Player(t, GamePrime1)
}

func loadPrime1GCN(t *Table) {
	t.RegisterFixed(GamePrime1GCN, "state_manager", Offsets{0x8045a1a8, 0x8045a1a8, 0x803e2088})
	t.RegisterFixed(GamePrime1GCN, "player", Offsets{0x8046b97c, 0x8046b97c, 0x803f38a4})
	t.RegisterFixed(GamePrime1GCN, "player_status", Offsets{0x8045c208, 0x8045c208, 0x803e40e8})
	t.RegisterFixed(GamePrime1GCN, "cursor", Offsets{0x805c28a8, 0x805c28a8, 0x80549f4c})

	t.RegisterDerived(GamePrime1GCN, "player_gun", "player", Offsets{0x480, 0x480, 0x480}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime1GCN, "object_list", "state_manager", Offsets{0x810, 0x810, 0x810}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime1GCN, "world", "state_manager", Offsets{0x850, 0x850, 0x850}, Offsets{0, 0, 0})
	loadPrime1Player(t, GamePrime1GCN)
}

func loadPrime2(t *Table) {
	t.RegisterFixed(GamePrime2, "state_manager", Offsets{0x805c6c40, 0x805c6c40, 0x805c8ca0})
	t.RegisterFixed(GamePrime2, "cursor", Offsets{0x80913c9c, 0x80913c9c, 0x80913df4})
	t.RegisterFixed(GamePrime2, "pause_screen", Offsets{0x805cb9a8, 0x805cb9a8, 0x805cda08})

	t.RegisterDerived(GamePrime2, "player", "state_manager", Offsets{0x14f4, 0x14f4, 0x14f4}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime2, "player_status", "player", Offsets{0x12ec, 0x12ec, 0x12ec}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime2, "player_gun", "player", Offsets{0xea8, 0xea8, 0xea8}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime2, "world", "state_manager", Offsets{0x1604, 0x1604, 0x1604}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime2, "player_transform", "player", Offsets{0x24, 0x24, 0x24})
	t.RegisterDerived(GamePrime2, "player_velocity", "player", Offsets{0x150, 0x150, 0x150})
	t.RegisterDerived(GamePrime2, "morphball_state", "player", Offsets{0x374, 0x374, 0x374})
	t.RegisterDerived(GamePrime2, "active_visor", "player_status", Offsets{0x34, 0x34, 0x34})
	t.RegisterDerived(GamePrime2, "beam_info", "player_gun", Offsets{0x774, 0x774, 0x774})
}

func loadPrime2GCN(t *Table) {
	t.RegisterFixed(GamePrime2GCN, "state_manager", Offsets{0x803db6e0, 0x803db6e0, 0x803dc900})
	t.RegisterFixed(GamePrime2GCN, "player_status", Offsets{0x803dc7c0, 0x803dc7c0, 0x803dd9e0})
	t.RegisterFixed(GamePrime2GCN, "cursor", Offsets{0x8041a6a4, 0x8041a6a4, 0x8041b8c4})

	t.RegisterDerived(GamePrime2GCN, "player", "state_manager", Offsets{0x14f4, 0x14f4, 0x14f4}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime2GCN, "player_gun", "player", Offsets{0xea8, 0xea8, 0xea8}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime2GCN, "player_transform", "player", Offsets{0x24, 0x24, 0x24})
	t.RegisterDerived(GamePrime2GCN, "player_velocity", "player", Offsets{0x150, 0x150, 0x150})
	t.RegisterDerived(GamePrime2GCN, "active_visor", "player_status", Offsets{0x34, 0x34, 0x34})
	t.RegisterDerived(GamePrime2GCN, "beam_info", "player_gun", Offsets{0x774, 0x774, 0x774})
}

func loadPrime3(t *Table) {
	t.RegisterFixed(GamePrime3, "state_manager_ptr", Offsets{0x805c4f98, 0x805c4f98, 0x805c7598})
	t.RegisterFixed(GamePrime3, "cursor_base", Offsets{0x8082b5d0, 0x8082b5d0, 0x8082dbd0})
	t.RegisterFixed(GamePrime3, "lockon_state", Offsets{0x805c6db7, 0x805c6db7, 0x805c93b7})

	/* Prime 3 keeps the state manager behind a global pointer */
	t.RegisterDerived(GamePrime3, "state_manager", "state_manager_ptr", Offsets{0, 0, 0}, Offsets{0x28, 0x28, 0x28}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime3, "player", "state_manager", Offsets{0x2184, 0x2184, 0x2184}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime3, "player_status", "player", Offsets{0x2184, 0x2184, 0x2184}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime3, "cursor", "cursor_base", Offsets{0, 0, 0}, Offsets{0xc54, 0xc54, 0xc54}, Offsets{0x9c, 0x9c, 0x9c})
	t.RegisterDerived(GamePrime3, "player_transform", "player", Offsets{0x2c, 0x2c, 0x2c})
	t.RegisterDerived(GamePrime3, "player_velocity", "player", Offsets{0x168, 0x168, 0x168})
	t.RegisterDerived(GamePrime3, "active_visor", "player_status", Offsets{0x54, 0x54, 0x54})
}

func loadPrime3Standalone(t *Table) {
	t.RegisterFixed(GamePrime3Standalone, "state_manager_ptr", Offsets{0x805c1d58, 0x805c4098, 0x805c5d18})
	t.RegisterFixed(GamePrime3Standalone, "cursor_base", Offsets{0x8082a300, 0x8082c640, 0x8082e2c0})
	t.RegisterFixed(GamePrime3Standalone, "lockon_state", Offsets{0x805c3b77, 0x805c5eb7, 0x805c7b37})

	t.RegisterDerived(GamePrime3Standalone, "state_manager", "state_manager_ptr", Offsets{0, 0, 0}, Offsets{0x28, 0x28, 0x28}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime3Standalone, "player", "state_manager", Offsets{0x2184, 0x2184, 0x2184}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime3Standalone, "player_status", "player", Offsets{0x2184, 0x2184, 0x2184}, Offsets{0, 0, 0})
	t.RegisterDerived(GamePrime3Standalone, "cursor", "cursor_base", Offsets{0, 0, 0}, Offsets{0xc54, 0xc54, 0xc54}, Offsets{0x9c, 0x9c, 0x9c})
	t.RegisterDerived(GamePrime3Standalone, "player_transform", "player", Offsets{0x2c, 0x2c, 0x2c})
	t.RegisterDerived(GamePrime3Standalone, "player_velocity", "player", Offsets{0x168, 0x168, 0x168})
	t.RegisterDerived(GamePrime3Standalone, "active_visor", "player_status", Offsets{0x54, 0x54, 0x54})
}

func loadMenu(t *Table) {
	t.RegisterFixed(GameMenu, "cursor", Offsets{0x80913c9c, 0x80913c9c, 0x80913df4})
	t.RegisterFixed(GameMenu, "selected_game", Offsets{0x8052e7c4, 0x8052e7c4, 0x8052ee44})
}
