package physics

const (
	FluxGain              = 5000.0 // flux proxy numerator per unit strength
	Epsilon               = 1.0    // px², keeps the denominator off zero
	SmoothingRetain       = 0.7    // weight of the previous smoothed rate
	SmoothingGain         = 0.3    // weight of the new |Δflux|
	CurrentScale          = 10.0   // smoothed rate × conductivity × turns → amperes
	BulbOnCurrent         = 0.05   // below this the filament stays dark
	FullBrightnessCurrent = 2.0    // current at which brightness saturates
	RiseRate              = 0.3    // easing toward a brighter target, per frame
	FallRate              = 0.08   // easing toward a dimmer target, per frame
	SlowMotionFactor      = 0.25   // easing rates are scaled by this in slow motion
	BrightnessFloor       = 0.001  // snaps to dark when decaying below this
	InsideMargin          = 20.0   // px added to the coil radius for insideCoil
	MaxPowerBrightness    = 0.95
)
