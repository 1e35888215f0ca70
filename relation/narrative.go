package relation

// Narrative returns a registry preloaded with the curated inverse table for
// narrative world graphs: rulers and realms, residence, protection, kinship,
// mentorship, ownership, and membership. Both directions of each pair are
// registered explicitly; nothing is derived from label strings. Labels
// outside this table (a sword that is "wielded", say) simply have no
// inverse until one is registered.
func Narrative() *Registry {
	r := NewRegistry()

	// Rule and governance.
	r.Register("rules",
		WithInverse("ruled by", 0),
		WithDescription("Sovereign authority over a realm or people"))
	r.Register("ruled by",
		WithInverse("rules", 0),
		WithDescription("Realm or people under a sovereign"))
	r.Register("leads",
		WithInverse("led by", 0),
		WithDescription("Leadership of a group or order"))
	r.Register("led by",
		WithInverse("leads", 0))

	// Protection.
	r.Register("protects",
		WithInverse("protected by", 0),
		WithDescription("Active guardianship of a place or person"))
	r.Register("protected by",
		WithInverse("protects", 0))

	// Residence and containment.
	r.Register("lives in",
		WithInverse("home of", 0),
		WithDescription("Primary residence"))
	r.Register("home of",
		WithInverse("lives in", 0))
	r.Register("located in",
		WithInverse("contains", 0),
		WithDescription("Physical containment within a larger place"))
	r.Register("contains",
		WithInverse("located in", 0))

	// Kinship.
	r.Register("parent of",
		WithInverse("child of", 0),
		WithDescription("Direct parentage"))
	r.Register("child of",
		WithInverse("parent of", 0))
	r.Register("daughter of",
		WithInverse("parent of", 0))
	r.Register("son of",
		WithInverse("parent of", 0))
	r.Register("married to",
		WithSymmetric(),
		WithDescription("Marriage bond"))

	// Mentorship and training.
	r.Register("mentor of",
		WithInverse("student of", 0),
		WithDescription("Personal instruction and guidance"))
	r.Register("student of",
		WithInverse("mentor of", 0))
	r.Register("trains",
		WithInverse("studies at", 0),
		WithDescription("Institutional training of a pupil"))
	r.Register("studies at",
		WithInverse("trains", 0))

	// Alliance and enmity.
	r.Register("allied with",
		WithSymmetric(),
		WithDescription("Mutual alliance"))
	r.Register("enemy of",
		WithSymmetric(),
		WithDescription("Mutual enmity"))

	// Possession and membership.
	r.Register("owns",
		WithInverse("owned by", 0),
		WithDescription("Ownership of an item or holding"))
	r.Register("owned by",
		WithInverse("owns", 0))
	r.Register("member of",
		WithInverse("has member", 0),
		WithDescription("Membership in an order, guild, or faction"))
	r.Register("has member",
		WithInverse("member of", 0))

	return r
}
