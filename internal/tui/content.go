package tui

const theoryText = `Faraday's law of induction

A changing magnetic flux through a loop of wire drives a current around it.
The induced EMF is proportional to how fast the flux changes, not to how much
flux there is:

    EMF = -N · dΦ/dt

N is the number of turns in the coil and Φ is the flux through one turn.
The minus sign is Lenz's law: the induced current flows so that its own field
opposes the change that produced it.

What to try in the lab

  • Hold the magnet still inside the coil. The flux is large but constant,
    so no current flows and the bulb stays dark.
  • Move the magnet quickly toward the coil. The flux rises fast and the bulb
    lights. Pull it away and the current flows again as the flux falls.
  • Add turns (+) or use a stronger magnet (]) to get more current from the
    same motion.
  • Swap the coil material (c). A poorer conductor like iron carries less
    current for the same EMF.

About the model

Flux here is an inverse-square proxy of the distance between the magnet and
the coil centre. Its frame-to-frame change is smoothed with a low-pass filter
before it becomes a current, so the meter and the bulb respond to motion
rather than to position.`

const historyText = `A short history of induction

1820  Hans Christian Ørsted notices a compass needle deflect next to a
      current-carrying wire: electricity makes magnetism.

1821  Michael Faraday builds the first electric motor, a wire rotating
      around a magnet in a cup of mercury.

1831  Faraday winds two coils on an iron ring. Closing or opening the
      circuit of one coil briefly deflects a galvanometer on the other.
      A steady current does nothing; only a change does. Weeks later he
      plunges a bar magnet into a coil and sees the same kick.

1832  Joseph Henry, working independently in Albany, publishes his own
      observations of self-induction.

1834  Heinrich Lenz states the rule for the direction of the induced
      current.

1865  James Clerk Maxwell folds Faraday's lines of force into his field
      equations. Induction becomes one of the four laws of
      electromagnetism.

Every generator, transformer and induction cooktop in use today runs on
the effect Faraday saw in 1831.`
