package pilot

// Type ids of the skills used by the mining calculations.
const (
	SkillAstrogeology         = 3410
	SkillDroneInterfacing     = 3442
	SkillDrones               = 3436
	SkillExhumers             = 22551
	SkillExpeditionFrigates   = 33856
	SkillGasCloudHarvesting   = 25544
	SkillIceHarvesting        = 16281
	SkillMining               = 3386
	SkillMiningBarge          = 17940
	SkillMiningDroneOperation = 3438
	SkillMiningFrigate        = 32918
)

var skillNames = map[int]string{
	SkillAstrogeology:         "Astrogeology",
	SkillDroneInterfacing:     "Drone Interfacing",
	SkillDrones:               "Drones",
	SkillExhumers:             "Exhumers",
	SkillExpeditionFrigates:   "Expedition Frigates",
	SkillGasCloudHarvesting:   "Gas Cloud Harvesting",
	SkillIceHarvesting:        "Ice Harvesting",
	SkillMining:               "Mining",
	SkillMiningBarge:          "Mining Barge",
	SkillMiningDroneOperation: "Mining Drone Operation",
	SkillMiningFrigate:        "Mining Frigate",
}

// SkillName returns the name of a known mining skill, "" otherwise.
func SkillName(skillID int) string {
	return skillNames[skillID]
}
