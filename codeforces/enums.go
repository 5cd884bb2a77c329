package codeforces

// Enum-like values are passed through exactly as the API sends them. The constants below are
// the documented values; anything else is kept verbatim.

// ContestType is the scoring system used for a contest.
type ContestType string

const (
	ContestTypeCF   ContestType = "CF"
	ContestTypeIOI  ContestType = "IOI"
	ContestTypeICPC ContestType = "ICPC"
)

// Phase is the lifecycle phase of a contest.
type Phase string

const (
	PhaseBefore            Phase = "BEFORE"
	PhaseCoding            Phase = "CODING"
	PhasePendingSystemTest Phase = "PENDING_SYSTEM_TEST"
	PhaseSystemTest        Phase = "SYSTEM_TEST"
	PhaseFinished          Phase = "FINISHED"
)

// ParticipantType is how a party took part in a contest.
type ParticipantType string

const (
	ParticipantContestant       ParticipantType = "CONTESTANT"
	ParticipantPractice         ParticipantType = "PRACTICE"
	ParticipantVirtual          ParticipantType = "VIRTUAL"
	ParticipantManager          ParticipantType = "MANAGER"
	ParticipantOutOfCompetition ParticipantType = "OUT_OF_COMPETITION"
)

type ProblemType string

const (
	ProblemTypeProgramming ProblemType = "PROGRAMMING"
	ProblemTypeQuestion    ProblemType = "QUESTION"
)

// ProblemResultType tells whether points for a problem may still decrease.
type ProblemResultType string

const (
	ProblemResultPreliminary ProblemResultType = "PRELIMINARY"
	ProblemResultFinal       ProblemResultType = "FINAL"
)

// Verdict is the judging outcome of a submission.
type Verdict string

const (
	VerdictFailed                  Verdict = "FAILED"
	VerdictOK                      Verdict = "OK"
	VerdictPartial                 Verdict = "PARTIAL"
	VerdictCompilationError        Verdict = "COMPILATION_ERROR"
	VerdictRuntimeError            Verdict = "RUNTIME_ERROR"
	VerdictWrongAnswer             Verdict = "WRONG_ANSWER"
	VerdictPresentationError       Verdict = "PRESENTATION_ERROR"
	VerdictTimeLimitExceeded       Verdict = "TIME_LIMIT_EXCEEDED"
	VerdictMemoryLimitExceeded     Verdict = "MEMORY_LIMIT_EXCEEDED"
	VerdictIdlenessLimitExceeded   Verdict = "IDLENESS_LIMIT_EXCEEDED"
	VerdictSecurityViolated        Verdict = "SECURITY_VIOLATED"
	VerdictCrashed                 Verdict = "CRASHED"
	VerdictInputPreparationCrashed Verdict = "INPUT_PREPARATION_CRASHED"
	VerdictChallenged              Verdict = "CHALLENGED"
	VerdictSkipped                 Verdict = "SKIPPED"
	VerdictTesting                 Verdict = "TESTING"
	VerdictRejected                Verdict = "REJECTED"
)

// HackVerdict is the outcome of a hack.
type HackVerdict string

const (
	HackSuccessful            HackVerdict = "HACK_SUCCESSFUL"
	HackUnsuccessful          HackVerdict = "HACK_UNSUCCESSFUL"
	HackInvalidInput          HackVerdict = "INVALID_INPUT"
	HackGeneratorIncompilable HackVerdict = "GENERATOR_INCOMPILABLE"
	HackGeneratorCrashed      HackVerdict = "GENERATOR_CRASHED"
	HackIgnored               HackVerdict = "IGNORED"
	HackTesting               HackVerdict = "TESTING"
	HackOther                 HackVerdict = "OTHER"
)
